package services

import (
	"math"
	"strings"

	"github.com/johndev38/LocationMatchmaker-sub000/models"

	"golang.org/x/exp/slices"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CalculateDistance returns the great-circle distance in kilometers between
// two points using the Haversine formula.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// HaversineKm is CalculateDistance over Coordinates values.
func HaversineKm(a, b Coordinates) float64 {
	return CalculateDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// WithinRadius answers whether the landlord's property is close enough to the
// tenant's departure city to satisfy the tenant's own maxDistance constraint.
func WithinRadius(property, origin Coordinates, maxDistanceKm int) bool {
	return HaversineKm(property, origin) <= float64(maxDistanceKm)
}

// RequestFilter is the composite predicate over a rental request list. Every
// sub-filter is independently toggleable; active ones are AND-combined.
type RequestFilter struct {
	MaxDistance   *int     // ceiling on request.maxDistance
	City          string   // case-insensitive substring match on departureCity
	LocationTypes []string // non-empty intersection with request.locationType
	BudgetFloor   *int     // request.maxBudget >= floor
	Proximity     bool     // landlord-only: withinRadius against Property
	Property      *Coordinates
}

// FilteredRequest pairs a surviving request with its computed distance.
// DistanceKm is nil when the request's departure city is not geocoded yet.
type FilteredRequest struct {
	Request    models.RentalRequest `json:"request"`
	DistanceKm *float64             `json:"distanceKm,omitempty"`
}

// Apply evaluates the composite filter. origins maps a departure city to its
// geocoded coordinates; a nil entry (geocoding pending or failed) passes the
// proximity filter by default, since excluding un-geocoded entries would hide
// valid requests.
func (f RequestFilter) Apply(requests []models.RentalRequest, origins map[string]*Coordinates) []FilteredRequest {
	results := make([]FilteredRequest, 0, len(requests))

	for _, request := range requests {
		if f.MaxDistance != nil && request.MaxDistance > *f.MaxDistance {
			continue
		}

		if f.City != "" &&
			!strings.Contains(strings.ToLower(request.DepartureCity), strings.ToLower(f.City)) {
			continue
		}

		if len(f.LocationTypes) > 0 && !hasIntersection(request.LocationTypes(), f.LocationTypes) {
			continue
		}

		if f.BudgetFloor != nil && request.MaxBudget < *f.BudgetFloor {
			continue
		}

		origin := origins[request.DepartureCity]

		var distance *float64
		if origin != nil && f.Property != nil {
			km := HaversineKm(*f.Property, *origin)
			distance = &km
		}

		if f.Proximity && f.Property != nil && origin != nil {
			if !WithinRadius(*f.Property, *origin, request.MaxDistance) {
				continue
			}
		}

		results = append(results, FilteredRequest{Request: request, DistanceKm: distance})
	}

	return results
}

func hasIntersection(a, b []string) bool {
	for _, v := range a {
		if slices.Contains(b, v) {
			return true
		}
	}
	return false
}
