package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Geocoder resolves free-text addresses to coordinates through a
// Nominatim-compatible endpoint. Lookups are best-effort: a failed lookup
// leaves the address un-geocoded and callers treat that as a pass-through.
type Geocoder struct {
	client  *http.Client
	baseURL string
	cache   *redis.Client
}

const geocodeCacheTTL = 30 * 24 * time.Hour

func NewGeocoder(cache *redis.Client) *Geocoder {
	baseURL := os.Getenv("NOMINATIM_URL")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	return &Geocoder{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
	}
}

// Geocode resolves one address, consulting the Redis cache first.
func (g *Geocoder) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return nil, fmt.Errorf("empty address")
	}

	cacheKey := "geocode:" + normalized
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey).Result(); err == nil {
			if coords := parseCachedCoordinates(cached); coords != nil {
				return coords, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(normalized))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", "locationmatchmaker-server")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding returned status %d", res.StatusCode)
	}

	var places []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(res.Body).Decode(&places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("no result for %q", address)
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, fmt.Errorf("malformed coordinates for %q", address)
	}

	coords := &Coordinates{Lat: lat, Lng: lng}

	if g.cache != nil {
		g.cache.Set(ctx, cacheKey, fmt.Sprintf("%f,%f", lat, lng), geocodeCacheTTL)
	}

	return coords, nil
}

// GeocodeAll resolves a set of distinct addresses. Failures leave a nil entry
// so the proximity filter can fail open for that address.
func (g *Geocoder) GeocodeAll(ctx context.Context, addresses []string) map[string]*Coordinates {
	results := make(map[string]*Coordinates, len(addresses))
	for _, address := range addresses {
		if _, seen := results[address]; seen {
			continue
		}
		coords, err := g.Geocode(ctx, address)
		if err != nil {
			results[address] = nil
			continue
		}
		results[address] = coords
	}
	return results
}

func parseCachedCoordinates(cached string) *Coordinates {
	parts := strings.SplitN(cached, ",", 2)
	if len(parts) != 2 {
		return nil
	}
	lat, latErr := strconv.ParseFloat(parts[0], 64)
	lng, lngErr := strconv.ParseFloat(parts[1], 64)
	if latErr != nil || lngErr != nil {
		return nil
	}
	return &Coordinates{Lat: lat, Lng: lng}
}
