package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
	"tripassistant.ucmerced.edu/internal/models"
)

// earthRadiusInMiles is the Earth's volumetric mean radius (6,371 km)
// expressed in statute miles. Every distance in this service is in miles.
const earthRadiusInMiles = 3959.0

// WalkingSpeedMPH is the constant walking pace used to turn a straight-line
// distance into an estimated walking time.
const WalkingSpeedMPH = 3.0

// Distance returns the great-circle distance in miles between a and b on a
// spherical Earth. s2 computes the central angle with the haversine formula,
// so identical points give exactly 0. The points are put in a fixed order
// first so Distance(a, b) and Distance(b, a) are bit-for-bit equal.
func Distance(a, b models.Coordinates) float64 {
	if a.Lat > b.Lat || (a.Lat == b.Lat && a.Lng > b.Lng) {
		a, b = b, a
	}
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * earthRadiusInMiles
}

// WalkingMinutes converts a distance in miles into whole minutes of walking
// at WalkingSpeedMPH, rounded to the nearest minute.
func WalkingMinutes(distance float64) int {
	return int(math.Round(distance / WalkingSpeedMPH * 60))
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Note: (0,0) is treated as invalid. Geocoders and hand-edited route files
// use it as a placeholder far more often than anyone boards a campus shuttle
// in the Gulf of Guinea.
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

// BoundingBox defines the corners of a lat/lon box
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains checks whether the given coordinates are within the bounding box
func (b BoundingBox) Contains(c models.Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lng >= b.MinLon && c.Lng <= b.MaxLon
}

// Expand returns a copy of the box grown by margin miles on every side.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	dLat := margin / earthRadiusInMiles * 180 / math.Pi
	midLat := (b.MinLat + b.MaxLat) / 2
	dLon := dLat / math.Max(math.Cos(midLat*math.Pi/180), 1e-6)
	return BoundingBox{
		MinLat: b.MinLat - dLat,
		MaxLat: b.MaxLat + dLat,
		MinLon: b.MinLon - dLon,
		MaxLon: b.MaxLon + dLon,
	}
}

// ComputeBoundingBox computes the box around every located stop in the
// catalog. It is the service area used to flag far-away destinations.
func ComputeBoundingBox(catalog *models.RouteCatalog) (BoundingBox, error) {
	minLat := math.MaxFloat64
	maxLat := -math.MaxFloat64
	minLon := math.MaxFloat64
	maxLon := -math.MaxFloat64

	for _, route := range catalog.Routes() {
		for _, stop := range route.Stops {
			if !stop.HasCoordinates() {
				continue
			}
			lat, lon := stop.Coordinates.Lat, stop.Coordinates.Lng
			minLat = math.Min(minLat, lat)
			maxLat = math.Max(maxLat, lat)
			minLon = math.Min(minLon, lon)
			maxLon = math.Max(maxLon, lon)
		}
	}

	if minLat == math.MaxFloat64 {
		return BoundingBox{}, fmt.Errorf("no located stops to compute bounding box")
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, nil
}
