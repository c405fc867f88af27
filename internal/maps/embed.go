package maps

import (
	"net/url"
	"strconv"
	"strings"

	"tripassistant.ucmerced.edu/internal/models"
)

const directionsEmbedURL = "https://www.google.com/maps/embed/v1/directions"

// FormatLatLng renders coordinates as "lat,lng".
func FormatLatLng(c models.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// DirectionsEmbedURL builds a Maps Embed directions URL that rides the
// corridor from its anchor to the matched stop and then continues to the
// destination. The corridor's interior stops and the matched stop become
// waypoints in corridor order; stops without coordinates are skipped.
//
// It reports false when the corridor has no located anchor.
func DirectionsEmbedURL(apiKey string, corridor []models.Stop, destination models.Coordinates) (string, bool) {
	if len(corridor) == 0 || corridor[0].Coordinates == nil {
		return "", false
	}

	var waypoints []string
	for _, stop := range corridor[1:] {
		if stop.Coordinates != nil {
			waypoints = append(waypoints, FormatLatLng(*stop.Coordinates))
		}
	}
	if len(corridor) == 1 {
		waypoints = append(waypoints, FormatLatLng(*corridor[0].Coordinates))
	}

	var b strings.Builder
	b.WriteString(directionsEmbedURL)
	b.WriteString("?key=")
	b.WriteString(url.QueryEscape(apiKey))
	b.WriteString("&origin=")
	b.WriteString(FormatLatLng(*corridor[0].Coordinates))
	b.WriteString("&destination=")
	b.WriteString(FormatLatLng(destination))
	b.WriteString("&waypoints=")
	b.WriteString(strings.Join(waypoints, "|"))
	b.WriteString("&mode=transit")
	return b.String(), true
}
