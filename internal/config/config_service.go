package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"tripassistant.ucmerced.edu/internal/catalog"
	"tripassistant.ucmerced.edu/internal/models"
	"tripassistant.ucmerced.edu/internal/report"
	"tripassistant.ucmerced.edu/internal/utils"
)

// DefaultMaxRetries bounds remote catalog fetches so a dead endpoint cannot
// stall startup forever.
const DefaultMaxRetries = 5

// ConfigService holds dependencies and provides catalog loading operations.
type ConfigService struct {
	Logger     *slog.Logger
	Client     *http.Client
	Config     *Config
	MaxRetries int
}

// NewConfigService creates a new ConfigService instance with the provided logger and HTTP client.
func NewConfigService(logger *slog.Logger, client *http.Client, config *Config) *ConfigService {
	return &ConfigService{
		Logger:     logger,
		Client:     client,
		Config:     config,
		MaxRetries: DefaultMaxRetries,
	}
}

// RefreshCatalog blocks, reloading the catalog with load every interval
// until ctx is canceled.
func (cs *ConfigService) RefreshCatalog(ctx context.Context, load CatalogLoader, interval time.Duration) {
	refreshCatalog(ctx, load, cs.Config, cs.Logger, interval)
}

// LoadCatalogFromFile loads a route document from disk.
func (cs *ConfigService) LoadCatalogFromFile(filePath string) (*models.RouteCatalog, error) {
	routes, err := loadCatalogFromFile(filePath)
	if err != nil {
		err := fmt.Errorf("failed to load routes from file %s: %w", filePath, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return nil, err
	}
	cs.warnAnchorProblems(routes)
	return routes, nil
}

// LoadCatalogFromURL loads a route document from a remote endpoint.
func (cs *ConfigService) LoadCatalogFromURL(ctx context.Context, url, authUser, authPass string) (*models.RouteCatalog, error) {
	routes, err := loadCatalogFromURL(ctx, cs.Client, url, authUser, authPass, cs.MaxRetries)
	if err != nil {
		err := fmt.Errorf("failed to load routes from URL %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("routes_url", url),
			Level: sentry.LevelError,
		})
		return nil, err
	}
	cs.warnAnchorProblems(routes)
	return routes, nil
}

// URLLoader adapts LoadCatalogFromURL to a CatalogLoader for RefreshCatalog.
func (cs *ConfigService) URLLoader(url, authUser, authPass string) CatalogLoader {
	return func(ctx context.Context) (*models.RouteCatalog, error) {
		return cs.LoadCatalogFromURL(ctx, url, authUser, authPass)
	}
}

// A route whose anchor is unusable still loads; its corridors come back
// empty, so the operator only gets a warning.
func (cs *ConfigService) warnAnchorProblems(routes *models.RouteCatalog) {
	for _, problem := range catalog.CheckAnchors(routes) {
		cs.Logger.Warn("Route catalog anchor problem", "problem", problem)
	}
}
