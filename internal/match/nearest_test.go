package match

import (
	"math"
	"testing"

	"tripassistant.ucmerced.edu/internal/geo"
	"tripassistant.ucmerced.edu/internal/models"
)

func TestNearestStop(t *testing.T) {
	tests := []struct {
		name     string
		stops    []models.Stop
		wantStop string
		wantOK   bool
	}{
		{
			name: "picks the closest regular stop",
			stops: []models.Stop{
				regular("far", north(campus, 2)),
				regular("near", north(campus, 0.3)),
				regular("middle", north(campus, 1)),
			},
			wantStop: "near",
			wantOK:   true,
		},
		{
			name: "ignores closer checkpoint and request stops",
			stops: []models.Stop{
				checkpoint("gate", north(campus, 0.01)),
				{ID: "wave", Kind: models.StopKindRequest, Coordinates: north(campus, 0.02)},
				regular("real", north(campus, 0.5)),
			},
			wantStop: "real",
			wantOK:   true,
		},
		{
			name: "skips regular stops without coordinates",
			stops: []models.Stop{
				regular("unlocated", nil),
				regular("located", north(campus, 3)),
			},
			wantStop: "located",
			wantOK:   true,
		},
		{
			name: "exact tie goes to the earlier stop",
			stops: []models.Stop{
				regular("first", north(campus, 0.7)),
				regular("second", north(campus, 0.7)),
			},
			wantStop: "first",
			wantOK:   true,
		},
		{
			name: "no usable stops",
			stops: []models.Stop{
				checkpoint("gate", north(campus, 0.1)),
				regular("unlocated", nil),
			},
			wantOK: false,
		},
		{
			name:   "empty route",
			stops:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := models.Route{ID: "r", Stops: tt.stops}
			got, ok := NearestStop(route, campus)
			if ok != tt.wantOK {
				t.Fatalf("NearestStop ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Stop.ID != tt.wantStop {
				t.Errorf("expected stop %q, got %q", tt.wantStop, got.Stop.ID)
			}
			if got.RouteID != "r" {
				t.Errorf("expected route id %q, got %q", "r", got.RouteID)
			}
		})
	}
}

func TestNearestStopIsMinimal(t *testing.T) {
	route := models.Route{
		ID: "loop",
		Stops: []models.Stop{
			regular("a", &models.Coordinates{Lat: 37.315, Lng: -120.503}),
			regular("b", &models.Coordinates{Lat: 37.3148, Lng: -120.4695}),
			regular("c", &models.Coordinates{Lat: 37.3197, Lng: -120.4691}),
			regular("d", &models.Coordinates{Lat: 37.3585, Lng: -120.4425}),
			regular("e", &models.Coordinates{Lat: 37.3615, Lng: -120.4281}),
		},
	}
	destinations := []models.Coordinates{
		{Lat: 37.3197, Lng: -120.4862},
		{Lat: 37.36, Lng: -120.43},
		{Lat: 37.30, Lng: -120.50},
		{Lat: 37.33, Lng: -120.45},
	}

	for _, dest := range destinations {
		got, ok := NearestStop(route, dest)
		if !ok {
			t.Fatalf("expected a match for %v", dest)
		}
		for _, stop := range route.Stops {
			if d := geo.Distance(*stop.Coordinates, dest); d < got.Distance {
				t.Errorf("stop %q at %.4f mi is closer than chosen %q at %.4f mi", stop.ID, d, got.Stop.ID, got.Distance)
			}
		}
	}
}

func TestNearestStopDistanceAndDuration(t *testing.T) {
	route := models.Route{ID: "r", Stops: []models.Stop{regular("x", north(campus, 1.5))}}

	got, ok := NearestStop(route, campus)
	if !ok {
		t.Fatal("expected a match")
	}
	if math.Abs(got.Distance-1.5) > 1e-6 {
		t.Errorf("expected distance 1.5 mi, got %v", got.Distance)
	}
	if got.Duration != 30 {
		t.Errorf("expected 30 minutes, got %d", got.Duration)
	}
}

func TestNearestStopDoesNotMutateRoute(t *testing.T) {
	stops := []models.Stop{
		regular("a", north(campus, 1)),
		checkpoint("b", north(campus, 0.1)),
		regular("c", north(campus, 0.5)),
	}
	route := models.Route{ID: "r", Stops: stops}

	NearestStop(route, campus)

	if got := stopIDs(route.Stops); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("route stops were modified: %v", got)
	}
}

func TestRankStops(t *testing.T) {
	route := models.Route{
		ID: "r",
		Stops: []models.Stop{
			regular("far", north(campus, 2)),
			regular("tie-1", north(campus, 1)),
			checkpoint("skip", north(campus, 0.1)),
			regular("near", north(campus, 0.2)),
			regular("tie-2", north(campus, 1)),
			regular("unlocated", nil),
		},
	}

	ranked := RankStops(route, campus)

	var got []string
	for _, r := range ranked {
		got = append(got, r.Stop.ID)
	}
	want := []string{"near", "tie-1", "tie-2", "far"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	nearest, _ := NearestStop(route, campus)
	if ranked[0].Stop.ID != nearest.Stop.ID {
		t.Errorf("RankStops head %q disagrees with NearestStop %q", ranked[0].Stop.ID, nearest.Stop.ID)
	}
	if ranked[0].Duration != 4 {
		t.Errorf("expected 4 minutes to the nearest stop, got %d", ranked[0].Duration)
	}
}
