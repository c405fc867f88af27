package match

import "tripassistant.ucmerced.edu/internal/models"

// Corridor returns the regular stops a rider passes from the route's anchor
// to target, both ends included, in travel direction.
//
// A loop never runs backwards: when target comes before the anchor in the
// stop list the corridor continues to the end of the list and wraps to the
// start. If the anchor or target is not a regular stop on the route the
// corridor is empty, which callers render as "no corridor available".
func Corridor(route models.Route, target models.Stop) []models.Stop {
	stops := EligibleStops(route)

	anchorIndex := indexOf(stops, route.AnchorStopID)
	targetIndex := indexOf(stops, target.ID)
	if anchorIndex < 0 || targetIndex < 0 {
		return []models.Stop{}
	}

	switch {
	case targetIndex == anchorIndex:
		return []models.Stop{stops[anchorIndex]}
	case targetIndex > anchorIndex:
		return append([]models.Stop(nil), stops[anchorIndex:targetIndex+1]...)
	default:
		corridor := make([]models.Stop, 0, len(stops)-anchorIndex+targetIndex+1)
		corridor = append(corridor, stops[anchorIndex:]...)
		return append(corridor, stops[:targetIndex+1]...)
	}
}

// Waypoints returns the located stops strictly between the corridor's first
// and last element, in order. They are what a directions provider receives
// as intermediate points.
func Waypoints(corridor []models.Stop) []models.Coordinates {
	if len(corridor) <= 2 {
		return nil
	}
	waypoints := make([]models.Coordinates, 0, len(corridor)-2)
	for _, stop := range corridor[1 : len(corridor)-1] {
		if stop.HasCoordinates() {
			waypoints = append(waypoints, *stop.Coordinates)
		}
	}
	return waypoints
}

func indexOf(stops []models.Stop, id string) int {
	if id == "" {
		return -1
	}
	for i, stop := range stops {
		if stop.ID == id {
			return i
		}
	}
	return -1
}
