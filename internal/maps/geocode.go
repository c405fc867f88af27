package maps

import (
	"context"
	"fmt"
	"net/url"

	"github.com/patrickmn/go-cache"
	gmaps "googlemaps.github.io/maps"
	"tripassistant.ucmerced.edu/internal/geo"
	"tripassistant.ucmerced.edu/internal/metrics"
	"tripassistant.ucmerced.edu/internal/models"
)

const geocodePath = "/maps/api/geocode/json"

// Geocode resolves a place id to coordinates using the Geocoding API.
// Lookups by place id go through ReverseGeocode, which is the SDK call that
// accepts a bare place_id.
func (c *Client) Geocode(ctx context.Context, placeID string) (models.Coordinates, error) {
	if placeID == "" {
		return models.Coordinates{}, fmt.Errorf("place id is empty")
	}

	if cached, ok := c.geocodes.Get(placeID); ok {
		metrics.RecordCacheLookup(true)
		return cached.(models.Coordinates), nil
	}
	metrics.RecordCacheLookup(false)

	sdk, err := c.service()
	if err != nil {
		return models.Coordinates{}, err
	}

	results, err := sdk.ReverseGeocode(ctx, &gmaps.GeocodingRequest{PlaceID: placeID})
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to geocode %s: %w", placeID, err)
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("geocode returned no results for %s", placeID)
	}

	location := results[0].Geometry.Location
	if location.Lat == 0 && location.Lng == 0 {
		return models.Coordinates{}, fmt.Errorf("geocode result for %s has no location", placeID)
	}

	coords := models.Coordinates{Lat: location.Lat, Lng: location.Lng}
	if !geo.IsValidLatLon(coords.Lat, coords.Lng) {
		return models.Coordinates{}, fmt.Errorf("geocode result for %s is out of range: %v", placeID, coords)
	}

	c.geocodes.Set(placeID, coords, cache.DefaultExpiration)
	return coords, nil
}

// GeocodeRaw returns the Geocoding API response for placeID untouched.
func (c *Client) GeocodeRaw(ctx context.Context, placeID string) ([]byte, int, error) {
	return c.get(ctx, geocodePath, url.Values{"place_id": {placeID}})
}
