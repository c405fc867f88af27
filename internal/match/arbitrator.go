package match

import (
	"errors"
	"fmt"

	"tripassistant.ucmerced.edu/internal/models"
)

var (
	// ErrEmptyCatalog means there are no routes to choose from.
	ErrEmptyCatalog = errors.New("route catalog is empty")
	// ErrUnknownRoute means a manual mode named a route the catalog lacks.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrNoUsableStops means the pinned route has no regular stop with coordinates.
	ErrNoUsableStops = errors.New("route has no usable stops")
	// ErrNoRouteAvailable means auto mode found no route with a usable stop.
	ErrNoRouteAvailable = errors.New("no route available")
)

// SelectBest runs the distance engine for dest under mode and returns the
// winning route and stop.
//
// In manual mode only mode.RouteID is considered. In auto mode every route
// is tried in catalog order and the globally nearest stop wins; on an exact
// distance tie the route earlier in the catalog is kept. Failures are
// reported as one of the package's sentinel errors, never by falling back to
// an arbitrary route.
func SelectBest(dest models.Coordinates, catalog *models.RouteCatalog, mode models.Mode) (models.MatchResult, error) {
	if catalog.Len() == 0 {
		return models.MatchResult{}, ErrEmptyCatalog
	}

	if !mode.Auto {
		route, ok := catalog.Route(mode.RouteID)
		if !ok {
			return models.MatchResult{}, fmt.Errorf("%w: %q", ErrUnknownRoute, mode.RouteID)
		}
		result, ok := NearestStop(route, dest)
		if !ok {
			return models.MatchResult{}, fmt.Errorf("%w: %q", ErrNoUsableStops, route.ID)
		}
		return result, nil
	}

	var (
		best  models.MatchResult
		found bool
	)
	for _, route := range catalog.Routes() {
		result, ok := NearestStop(route, dest)
		if !ok {
			continue
		}
		if !found || result.Distance < best.Distance {
			best, found = result, true
		}
	}

	if !found {
		return models.MatchResult{}, ErrNoRouteAvailable
	}
	return best, nil
}
