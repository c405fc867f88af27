//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"os"
)

// Case is one live query and what it is expected to produce.
type Case struct {
	Name    string `json:"name"`
	Query   string `json:"query"`
	Mode    string `json:"mode"`
	RouteID string `json:"route_id"`
	// WantStatus is the expected result status; empty means "ok".
	WantStatus string `json:"want_status"`
}

// Config describes the live services and catalog the integration tests run
// against. API keys come from the environment when left empty here.
type Config struct {
	RoutesFile   string `json:"routes_file"`
	GTFSURL      string `json:"gtfs_url"`
	GeminiAPIKey string `json:"gemini_api_key"`
	MapsAPIKey   string `json:"maps_api_key"`
	// KnownPlaceID must geocode inside the service area.
	KnownPlaceID string `json:"known_place_id"`
	Cases        []Case `json:"cases"`
}

func loadIntegrationConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.MapsAPIKey == "" {
		cfg.MapsAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	}
	return cfg, nil
}
