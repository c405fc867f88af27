package config

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tripassistant.ucmerced.edu/internal/models"
)

const loopRouteYAML = `routes:
  - id: loop
    label: Loop
    anchor_stop_id: a
    stops:
      - id: a
        name: Stop A
        coordinates: {lat: 37.36, lng: -120.42}
      - id: b
        name: Stop B
        coordinates: {lat: 37.33, lng: -120.47}
`

const loopRouteJSON = `{"routes": [{
	"id": "loop",
	"label": "Loop",
	"anchor_stop_id": "a",
	"stops": [
		{"id": "a", "name": "Stop A", "coordinates": {"lat": 37.36, "lng": -120.42}},
		{"id": "b", "name": "Stop B", "coordinates": {"lat": 37.33, "lng": -120.47}},
		{"id": "c", "name": "Stop C", "kind": "checkpoint"}
	]
}]}`

func TestLoadCatalogFromFile(t *testing.T) {
	t.Run("ValidYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.yaml")
		if err := os.WriteFile(path, []byte(loopRouteYAML), 0o600); err != nil {
			t.Fatalf("Failed to write routes file: %v", err)
		}

		routes, err := loadCatalogFromFile(path)
		if err != nil {
			t.Fatalf("loadCatalogFromFile failed: %v", err)
		}
		route, ok := routes.Route("loop")
		if !ok {
			t.Fatalf("Expected route loop, got ids %v", routes.IDs())
		}
		if len(route.Stops) != 2 || route.AnchorStopID != "a" {
			t.Errorf("Unexpected route %+v", route)
		}
	})

	t.Run("ValidJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.json")
		if err := os.WriteFile(path, []byte(loopRouteJSON), 0o600); err != nil {
			t.Fatalf("Failed to write routes file: %v", err)
		}

		routes, err := loadCatalogFromFile(path)
		if err != nil {
			t.Fatalf("loadCatalogFromFile failed: %v", err)
		}
		route, _ := routes.Route("loop")
		if len(route.Stops) != 3 {
			t.Fatalf("Expected 3 stops, got %d", len(route.Stops))
		}
		if route.Stops[2].Kind != models.StopKindCheckpoint {
			t.Errorf("Expected checkpoint, got %v", route.Stops[2].Kind)
		}
	})

	t.Run("InvalidDocument", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.yaml")
		if err := os.WriteFile(path, []byte("routes: []\n"), 0o600); err != nil {
			t.Fatalf("Failed to write routes file: %v", err)
		}

		if _, err := loadCatalogFromFile(path); err == nil {
			t.Error("Expected error for an empty catalog document, got none")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := loadCatalogFromFile("non-existent-file.yaml")
		if err == nil || !strings.Contains(err.Error(), "failed to read routes file") {
			t.Errorf("Expected read error, got: %v", err)
		}
	})
}

func TestLoadCatalogFromURL(t *testing.T) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	t.Run("ValidResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "user" || pass != "pass" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(loopRouteJSON))
		}))
		defer ts.Close()

		routes, err := loadCatalogFromURL(context.Background(), client, ts.URL, "user", "pass", 1)
		if err != nil {
			t.Fatalf("loadCatalogFromURL failed: %v", err)
		}
		if routes.Len() != 1 {
			t.Fatalf("Expected 1 route, got %d", routes.Len())
		}
	})

	t.Run("YAMLByExtension", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte(loopRouteYAML))
		}))
		defer ts.Close()

		routes, err := loadCatalogFromURL(context.Background(), client, ts.URL+"/routes.yaml", "", "", 1)
		if err != nil {
			t.Fatalf("loadCatalogFromURL failed: %v", err)
		}
		if _, ok := routes.Route("loop"); !ok {
			t.Errorf("Expected route loop, got ids %v", routes.IDs())
		}
	})

	t.Run("UnauthorizedResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		_, err := loadCatalogFromURL(context.Background(), client, ts.URL, "", "", 1)
		if err == nil || !strings.Contains(err.Error(), "status: 401") {
			t.Errorf("Expected status error, got: %v", err)
		}
	})

	t.Run("InvalidJSONResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{ this is not valid JSON }`))
		}))
		defer ts.Close()

		if _, err := loadCatalogFromURL(context.Background(), client, ts.URL, "", "", 1); err == nil {
			t.Errorf("Expected error for invalid JSON response, got none")
		}
	})

	t.Run("InvalidURL", func(t *testing.T) {
		_, err := loadCatalogFromURL(context.Background(), client, "://invalid-url", "", "", 1)
		if err == nil || !strings.Contains(err.Error(), "failed to create request") {
			t.Errorf("Expected request creation error, got: %v", err)
		}
	})
}

func TestValidateConfigFlags(t *testing.T) {
	tests := []struct {
		name        string
		src         CatalogSource
		args        []string
		expectError string
	}{
		{"No source", CatalogSource{}, nil, "no route catalog provided"},
		{"Routes file", CatalogSource{RoutesFile: "routes.yaml"}, nil, ""},
		{"Routes URL", CatalogSource{RoutesURL: "http://example.com/routes.json"}, nil, ""},
		{"GTFS file", CatalogSource{GTFSFile: "gtfs.zip"}, nil, ""},
		{"GTFS URL", CatalogSource{GTFSURL: "http://example.com/gtfs.zip"}, nil, ""},
		{"File and URL", CatalogSource{RoutesFile: "routes.yaml", RoutesURL: "http://example.com/routes.json"}, nil, "only one of"},
		{"Routes and GTFS", CatalogSource{RoutesFile: "routes.yaml", GTFSFile: "gtfs.zip"}, nil, "only one of"},
		{"Extra args", CatalogSource{RoutesFile: "routes.yaml"}, []string{"extraArg"}, "only one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfigFlags(tt.src, tt.args)
			if tt.expectError == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("Expected error containing %q, got: %v", tt.expectError, err)
			}
		})
	}
}

func TestCatalogSourceRemote(t *testing.T) {
	if (CatalogSource{RoutesFile: "routes.yaml"}).Remote() {
		t.Error("Expected a file source not to be remote")
	}
	if !(CatalogSource{GTFSURL: "http://example.com/gtfs.zip"}).Remote() {
		t.Error("Expected a GTFS URL source to be remote")
	}
}

func TestRefreshCatalog(t *testing.T) {
	initial := models.NewRouteCatalog([]models.Route{{ID: "old"}})
	cfg := NewConfig(4000, "testing", initial)

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var hits atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		user, pass, hasAuth := r.BasicAuth()
		if !hasAuth || user != "testuser" || pass != "testpass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(loopRouteJSON))
	}))
	defer mockServer.Close()

	service := NewConfigService(testLogger, client, cfg)
	service.MaxRetries = 1

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		service.RefreshCatalog(ctx, service.URLLoader(mockServer.URL, "testuser", "testpass"), 20*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := cfg.GetCatalog().Route("loop"); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	if hits.Load() == 0 {
		t.Fatal("Expected the refresh routine to hit the server")
	}
	if _, ok := cfg.GetCatalog().Route("loop"); !ok {
		t.Errorf("Expected refreshed catalog, got ids %v", cfg.GetCatalog().IDs())
	}
	if _, ok := initial.Route("old"); !ok {
		t.Error("Expected the previous catalog to stay intact")
	}
}

func TestRefreshCatalogKeepsCatalogOnFailure(t *testing.T) {
	initial := models.NewRouteCatalog([]models.Route{{ID: "old"}})
	cfg := NewConfig(4000, "testing", initial)
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var calls atomic.Int32
	failing := func(ctx context.Context) (*models.RouteCatalog, error) {
		calls.Add(1)
		return nil, context.DeadlineExceeded
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	refreshCatalog(ctx, failing, cfg, testLogger, 10*time.Millisecond)

	if calls.Load() == 0 {
		t.Fatal("Expected the loader to be called")
	}
	if cfg.GetCatalog() != initial {
		t.Error("Expected the catalog to be unchanged after failed refreshes")
	}
}

func TestResolveDefaultRoute(t *testing.T) {
	routes := models.NewRouteCatalog([]models.Route{{ID: "c1"}, {ID: "e1"}})
	cfg := NewConfig(4000, "testing", routes)

	cfg.DefaultRoute = "e1"
	if got := cfg.ResolveDefaultRoute(); got != "e1" {
		t.Errorf("Expected e1, got %q", got)
	}

	cfg.DefaultRoute = "missing"
	if got := cfg.ResolveDefaultRoute(); got != "c1" {
		t.Errorf("Expected fallback to c1, got %q", got)
	}

	cfg.UpdateCatalog(models.NewRouteCatalog(nil))
	if got := cfg.ResolveDefaultRoute(); got != "" {
		t.Errorf("Expected empty default for empty catalog, got %q", got)
	}
}
