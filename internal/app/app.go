package app

import (
	"log/slog"
	"net/http"
	"time"

	"tripassistant.ucmerced.edu/internal/config"
	"tripassistant.ucmerced.edu/internal/grounding"
	"tripassistant.ucmerced.edu/internal/maps"
	"tripassistant.ucmerced.edu/internal/query"
)

// GeocodeCacheTTL is how long a geocoded place id is reused. Place
// coordinates practically never move.
const GeocodeCacheTTL = 24 * time.Hour

// APIKeys are the secrets for the Google services behind a query.
type APIKeys struct {
	Gemini string
	Maps   string
}

// Application wires the configuration, the query pipeline and the Maps
// passthrough together behind the HTTP API.
type Application struct {
	ConfigService *config.ConfigService
	QueryService  *query.Service
	Maps          *maps.Client
	Logger        *slog.Logger
	Version       string
}

// New creates and wires all dependencies for the Application. The same
// pooled client is shared by every outgoing call.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string, keys APIKeys) *Application {
	gemini := grounding.NewGeminiClient(keys.Gemini, cfg.GroundingModel, client)
	mapsClient := maps.NewClient(keys.Maps, client, GeocodeCacheTTL)

	return &Application{
		ConfigService: config.NewConfigService(logger, client, cfg),
		QueryService:  query.NewService(gemini, mapsClient, logger, grounding.DefaultCenter),
		Maps:          mapsClient,
		Logger:        logger,
		Version:       version,
	}
}
