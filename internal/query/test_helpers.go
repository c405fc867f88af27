package query

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"tripassistant.ucmerced.edu/internal/models"
)

var campus = models.Coordinates{Lat: 37.3, Lng: -120.48}

// north returns the point miles due north of campus.
func north(miles float64) models.Coordinates {
	return models.Coordinates{Lat: campus.Lat + miles/3959.0*180/math.Pi, Lng: campus.Lng}
}

func at(c models.Coordinates) *models.Coordinates { return &c }

type fakeGrounder struct {
	grounding models.Grounding
	err       error

	mu       sync.Mutex
	near     models.Coordinates
	deadline time.Time
}

func (f *fakeGrounder) Ground(ctx context.Context, text string, near models.Coordinates) (models.Grounding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.near = near
	f.deadline, _ = ctx.Deadline()
	return f.grounding, f.err
}

type fakeGeocoder struct {
	coords map[string]models.Coordinates

	mu    sync.Mutex
	calls []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, placeID string) (models.Coordinates, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, placeID)
	c, ok := f.coords[placeID]
	if !ok {
		return models.Coordinates{}, fmt.Errorf("no geocode for %s", placeID)
	}
	return c, nil
}

// testCatalog has two routes. For a destination 1.55 mi north of campus,
// r1's nearest stop is c1 (0.45 mi) and r2's is b2 (0.05 mi).
func testCatalog() *models.RouteCatalog {
	return models.NewRouteCatalog([]models.Route{
		{
			ID:           "r1",
			AnchorStopID: "a1",
			Stops: []models.Stop{
				{ID: "a1", Coordinates: at(campus)},
				{ID: "x1", Kind: models.StopKindCheckpoint, Coordinates: at(north(1.5))},
				{ID: "b1", Coordinates: at(north(1.0))},
				{ID: "c1", Coordinates: at(north(2.0))},
			},
		},
		{
			ID:           "r2",
			AnchorStopID: "a2",
			Stops: []models.Stop{
				{ID: "a2", Coordinates: at(north(0.2))},
				{ID: "b2", Coordinates: at(north(1.6))},
			},
		},
		{
			ID:           "empty",
			AnchorStopID: "p",
			Stops:        []models.Stop{{ID: "p"}},
		},
	})
}

func newTestService(t *testing.T, grounder Grounder, geocoder Geocoder) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(grounder, geocoder, logger, campus)
}
