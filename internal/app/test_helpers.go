package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripassistant.ucmerced.edu/internal/config"
	"tripassistant.ucmerced.edu/internal/maps"
	"tripassistant.ucmerced.edu/internal/models"
	"tripassistant.ucmerced.edu/internal/query"
)

const testMapsKey = "test-maps-key"

type stubGrounder struct {
	grounding models.Grounding
	err       error
}

func (s *stubGrounder) Ground(ctx context.Context, text string, near models.Coordinates) (models.Grounding, error) {
	return s.grounding, s.err
}

func at(lat, lng float64) *models.Coordinates {
	return &models.Coordinates{Lat: lat, Lng: lng}
}

// testCatalog holds two loops. The park (37.3195, -120.48) is closest to
// c1's mall stop.
func testCatalog() *models.RouteCatalog {
	return models.NewRouteCatalog([]models.Route{
		{
			ID:           "c1",
			Label:        "C1 Castle",
			AnchorStopID: "utc",
			Stops: []models.Stop{
				{ID: "utc", Name: "UTC", Coordinates: at(37.30, -120.48)},
				{ID: "castle", Name: "Castle", Coordinates: at(37.31, -120.48)},
				{ID: "mall", Name: "Merced Mall", Coordinates: at(37.32, -120.48)},
			},
		},
		{
			ID:           "e1",
			Label:        "E1 Express",
			AnchorStopID: "amtrak",
			Stops: []models.Stop{
				{ID: "amtrak", Name: "Amtrak", Coordinates: at(37.30, -120.49)},
				{ID: "target", Name: "Target", Coordinates: at(37.33, -120.49)},
			},
		},
	})
}

// setupMapsServer fakes the Geocoding and Distance Matrix endpoints. The
// place id "ChIJpark" resolves, "ChIJbroken" fails upstream, anything else
// is NOT_FOUND.
func setupMapsServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("place_id") {
		case "ChIJpark":
			fmt.Fprint(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":37.3195,"lng":-120.48}}}]}`)
		case "ChIJbroken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			fmt.Fprint(w, `{"status":"NOT_FOUND","results":[]}`)
		}
	})
	mux.HandleFunc("/maps/api/distancematrix/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":"OK","mode":%q,"rows":[]}`, r.URL.Query().Get("mode"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestApplication(t *testing.T, catalog *models.RouteCatalog, grounder query.Grounder) *Application {
	t.Helper()

	server := setupMapsServer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.NewConfig(4000, "testing", catalog)
	cfg.DefaultRoute = "e1"

	mapsClient := maps.NewClient(testMapsKey, server.Client(), GeocodeCacheTTL)
	mapsClient.BaseURL = server.URL

	return &Application{
		ConfigService: config.NewConfigService(logger, server.Client(), cfg),
		QueryService:  query.NewService(grounder, mapsClient, logger, models.Coordinates{Lat: 37.3, Lng: -120.48}),
		Maps:          mapsClient,
		Logger:        logger,
		Version:       "test-version",
	}
}

func parkGrounder() *stubGrounder {
	return &stubGrounder{grounding: models.Grounding{
		Text: "Try the park by the mall.",
		Places: []models.Place{
			{Title: "Applegate Park", URI: "https://maps.google.com/?cid=1", PlaceID: "ChIJpark"},
		},
	}}
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}
