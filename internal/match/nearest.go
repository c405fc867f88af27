package match

import (
	"sort"

	"tripassistant.ucmerced.edu/internal/geo"
	"tripassistant.ucmerced.edu/internal/models"
)

// NearestStop finds the usable stop on route closest to dest.
//
// It returns false when the route has no usable stops. When several stops
// are exactly equally distant, the one earliest in route order wins.
func NearestStop(route models.Route, dest models.Coordinates) (models.MatchResult, bool) {
	var (
		best     models.Stop
		bestDist float64
		found    bool
	)

	for _, stop := range UsableStops(route) {
		d := geo.Distance(*stop.Coordinates, dest)
		if !found || d < bestDist {
			best, bestDist, found = stop, d, true
		}
	}

	if !found {
		return models.MatchResult{}, false
	}

	return models.MatchResult{
		RouteID:  route.ID,
		Stop:     best,
		Distance: bestDist,
		Duration: geo.WalkingMinutes(bestDist),
	}, true
}

// RankStops lists every usable stop on route by increasing distance to
// dest. Equal distances keep route order, so the first entry always agrees
// with NearestStop.
func RankStops(route models.Route, dest models.Coordinates) []models.StopDistance {
	usable := UsableStops(route)
	ranked := make([]models.StopDistance, 0, len(usable))
	for _, stop := range usable {
		d := geo.Distance(*stop.Coordinates, dest)
		ranked = append(ranked, models.StopDistance{
			Stop:     stop,
			Distance: d,
			Duration: geo.WalkingMinutes(d),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked
}
