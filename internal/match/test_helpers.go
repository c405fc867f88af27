package match

import (
	"math"

	"tripassistant.ucmerced.edu/internal/models"
)

// campus is the destination most tests measure from.
var campus = models.Coordinates{Lat: 37.3, Lng: -120.48}

// north returns the point miles due north of c. Along a meridian the
// great-circle distance is exactly the latitude difference.
func north(c models.Coordinates, miles float64) *models.Coordinates {
	return &models.Coordinates{Lat: c.Lat + miles/3959.0*180/math.Pi, Lng: c.Lng}
}

func regular(id string, at *models.Coordinates) models.Stop {
	return models.Stop{ID: id, Name: id, Kind: models.StopKindRegular, Coordinates: at}
}

func checkpoint(id string, at *models.Coordinates) models.Stop {
	return models.Stop{ID: id, Name: id, Kind: models.StopKindCheckpoint, Coordinates: at}
}

func stopIDs(stops []models.Stop) []string {
	ids := make([]string, len(stops))
	for i, s := range stops {
		ids[i] = s.ID
	}
	return ids
}
