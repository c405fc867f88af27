package match

import "tripassistant.ucmerced.edu/internal/models"

// EligibleStops returns the route's regular stops in travel order. It is the
// view both the distance engine and the corridor extractor work on.
func EligibleStops(route models.Route) []models.Stop {
	stops := make([]models.Stop, 0, len(route.Stops))
	for _, stop := range route.Stops {
		if stop.Eligible() {
			stops = append(stops, stop)
		}
	}
	return stops
}

// UsableStops narrows EligibleStops to stops that carry coordinates. A
// regular stop without coordinates is skipped, never selected.
func UsableStops(route models.Route) []models.Stop {
	stops := make([]models.Stop, 0, len(route.Stops))
	for _, stop := range EligibleStops(route) {
		if stop.HasCoordinates() {
			stops = append(stops, stop)
		}
	}
	return stops
}
