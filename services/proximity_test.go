package services

import (
	"math"
	"testing"

	"github.com/johndev38/LocationMatchmaker-sub000/models"
)

var (
	paris = Coordinates{Lat: 48.8566, Lng: 2.3522}
	lyon  = Coordinates{Lat: 45.7640, Lng: 4.8357}
)

func TestCalculateDistanceZeroForSamePoint(t *testing.T) {
	d := CalculateDistance(paris.Lat, paris.Lng, paris.Lat, paris.Lng)
	if d != 0 {
		t.Fatalf("expected 0 km for identical points, got %f", d)
	}
}

func TestCalculateDistanceSymmetry(t *testing.T) {
	ab := HaversineKm(paris, lyon)
	ba := HaversineKm(lyon, paris)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestCalculateDistanceParisLyon(t *testing.T) {
	// Great-circle Paris-Lyon is roughly 392 km
	d := HaversineKm(paris, lyon)
	if d < 380 || d > 400 {
		t.Fatalf("expected Paris-Lyon around 392 km, got %f", d)
	}
}

func TestWithinRadius(t *testing.T) {
	if WithinRadius(paris, lyon, 300) {
		t.Fatal("300 km radius should not cover Paris-Lyon")
	}
	if !WithinRadius(paris, lyon, 450) {
		t.Fatal("450 km radius should cover Paris-Lyon")
	}
}

func activeRequest(city string, maxDistance, maxBudget int, locationTypes ...string) models.RentalRequest {
	return models.RentalRequest{
		DepartureCity: city,
		MaxDistance:   maxDistance,
		MaxBudget:     maxBudget,
		LocationType:  models.EncodeStringList(locationTypes),
		Status:        "active",
	}
}

func TestApplyNoFiltersKeepsEverything(t *testing.T) {
	requests := []models.RentalRequest{
		activeRequest("Paris", 100, 800, "city"),
		activeRequest("Lyon", 50, 600, "countryside"),
	}

	results := RequestFilter{}.Apply(requests, nil)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestApplyMaxDistanceCeiling(t *testing.T) {
	requests := []models.RentalRequest{
		activeRequest("Paris", 100, 800, "city"),
		activeRequest("Lyon", 500, 600, "city"),
	}

	ceiling := 200
	results := RequestFilter{MaxDistance: &ceiling}.Apply(requests, nil)
	if len(results) != 1 || results[0].Request.DepartureCity != "Paris" {
		t.Fatalf("expected only the Paris request, got %+v", results)
	}
}

func TestApplyCityIsCaseInsensitiveSubstring(t *testing.T) {
	requests := []models.RentalRequest{
		activeRequest("Paris 11e", 100, 800, "city"),
		activeRequest("Lyon", 50, 600, "city"),
	}

	results := RequestFilter{City: "paris"}.Apply(requests, nil)
	if len(results) != 1 || results[0].Request.DepartureCity != "Paris 11e" {
		t.Fatalf("expected the Paris request, got %+v", results)
	}
}

func TestApplyLocationTypeIntersection(t *testing.T) {
	requests := []models.RentalRequest{
		activeRequest("Paris", 100, 800, "city", "seaside"),
		activeRequest("Lyon", 50, 600, "countryside"),
	}

	results := RequestFilter{LocationTypes: []string{"seaside", "mountain"}}.Apply(requests, nil)
	if len(results) != 1 || results[0].Request.DepartureCity != "Paris" {
		t.Fatalf("expected the Paris request, got %+v", results)
	}
}

func TestApplyBudgetFloor(t *testing.T) {
	requests := []models.RentalRequest{
		activeRequest("Paris", 100, 800, "city"),
		activeRequest("Lyon", 50, 400, "city"),
	}

	floor := 500
	results := RequestFilter{BudgetFloor: &floor}.Apply(requests, nil)
	if len(results) != 1 || results[0].Request.DepartureCity != "Paris" {
		t.Fatalf("expected the Paris request, got %+v", results)
	}
}

func TestApplyProximityUsesRequestMaxDistance(t *testing.T) {
	// Paris-Lyon is ~392 km: a 450 km budget passes, a 300 km budget does not.
	requests := []models.RentalRequest{
		activeRequest("Paris", 450, 800, "city"),
		activeRequest("Lyon", 300, 800, "city"),
	}
	origins := map[string]*Coordinates{
		"Paris": {Lat: paris.Lat, Lng: paris.Lng},
		"Lyon":  {Lat: paris.Lat, Lng: paris.Lng}, // property is in Lyon, request origin Paris
	}
	property := lyon

	results := RequestFilter{Proximity: true, Property: &property}.Apply(requests, origins)
	if len(results) != 1 || results[0].Request.DepartureCity != "Paris" {
		t.Fatalf("expected only the 450 km request to survive, got %+v", results)
	}
	if results[0].DistanceKm == nil {
		t.Fatal("expected a computed distance for a geocoded origin")
	}
	if *results[0].DistanceKm < 380 || *results[0].DistanceKm > 400 {
		t.Fatalf("expected ~392 km, got %f", *results[0].DistanceKm)
	}
}

func TestApplyProximityFailsOpenWithoutCoordinates(t *testing.T) {
	requests := []models.RentalRequest{
		activeRequest("Atlantis", 10, 800, "city"),
	}
	property := lyon

	// Un-geocoded city: nil origin entry must not hide the request.
	origins := map[string]*Coordinates{"Atlantis": nil}
	results := RequestFilter{Proximity: true, Property: &property}.Apply(requests, origins)
	if len(results) != 1 {
		t.Fatalf("expected the un-geocoded request to pass through, got %d results", len(results))
	}
	if results[0].DistanceKm != nil {
		t.Fatal("expected no distance for an un-geocoded origin")
	}
}

func TestApplyCombinesFiltersWithAND(t *testing.T) {
	requests := []models.RentalRequest{
		activeRequest("Paris", 100, 800, "city"),  // survives everything
		activeRequest("Paris", 100, 400, "city"),  // fails budget
		activeRequest("Paris", 500, 800, "city"),  // fails maxDistance ceiling
		activeRequest("Lyon", 100, 800, "city"),   // fails city
		activeRequest("Paris", 100, 800, "rural"), // fails location type
	}

	ceiling, floor := 200, 500
	results := RequestFilter{
		MaxDistance:   &ceiling,
		City:          "Paris",
		LocationTypes: []string{"city"},
		BudgetFloor:   &floor,
	}.Apply(requests, nil)

	if len(results) != 1 {
		t.Fatalf("expected exactly 1 survivor, got %d", len(results))
	}
}
