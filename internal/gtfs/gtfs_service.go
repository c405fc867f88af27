package gtfs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/getsentry/sentry-go"
	"tripassistant.ucmerced.edu/internal/config"
	"tripassistant.ucmerced.edu/internal/models"
	"tripassistant.ucmerced.edu/internal/report"
	"tripassistant.ucmerced.edu/internal/utils"
)

// GtfsService builds route catalogs from static GTFS bundles.
type GtfsService struct {
	Logger       *slog.Logger
	Client       *http.Client
	CacheDir     string
	AnchorStopID string
	MaxRetries   int
}

func NewGtfsService(logger *slog.Logger, client *http.Client, cacheDir, anchorStopID string) *GtfsService {
	return &GtfsService{
		Logger:       logger,
		Client:       client,
		CacheDir:     cacheDir,
		AnchorStopID: anchorStopID,
		MaxRetries:   config.DefaultMaxRetries,
	}
}

// LoadCatalogFromFile imports a catalog from a GTFS zip on disk.
func (gs *GtfsService) LoadCatalogFromFile(path string) (*models.RouteCatalog, error) {
	// #nosec G304 -- the path comes from an operator flag.
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read GTFS bundle %s: %w", path, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("gtfs_file", path),
			Level: sentry.LevelError,
		})
		return nil, err
	}
	return gs.importBundle(data, utils.MakeMap("gtfs_file", path))
}

// LoadCatalogFromURL downloads a GTFS bundle and imports a catalog from it.
// A successful download is cached; when the download fails the newest
// cached copy is used instead, if there is one.
func (gs *GtfsService) LoadCatalogFromURL(ctx context.Context, url string) (*models.RouteCatalog, error) {
	tags := utils.MakeMap("gtfs_url", url)

	data, err := downloadGTFSBundle(ctx, gs.Client, url, gs.MaxRetries)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  tags,
			Level: sentry.LevelError,
		})
		if gs.CacheDir == "" {
			return nil, err
		}
		cached, cacheErr := lastCachedGTFSBundle(gs.CacheDir, url)
		if cacheErr != nil {
			return nil, fmt.Errorf("%w (no cached bundle: %v)", err, cacheErr)
		}
		gs.Logger.Warn("Using cached GTFS bundle after failed download", "gtfs_url", url, "error", err)
		data = cached
	} else if gs.CacheDir != "" {
		if _, err := cacheGTFSBundle(gs.CacheDir, url, data); err != nil {
			gs.Logger.Warn("Failed to cache GTFS bundle", "gtfs_url", url, "error", err)
		}
	}

	return gs.importBundle(data, tags)
}

// URLLoader adapts LoadCatalogFromURL for the catalog refresh loop.
func (gs *GtfsService) URLLoader(url string) config.CatalogLoader {
	return func(ctx context.Context) (*models.RouteCatalog, error) {
		return gs.LoadCatalogFromURL(ctx, url)
	}
}

func (gs *GtfsService) importBundle(data []byte, tags map[string]string) (*models.RouteCatalog, error) {
	staticBundle, err := parseGTFSBundle(data)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  tags,
			Level: sentry.LevelError,
		})
		return nil, err
	}

	routes, err := ImportCatalog(staticBundle, gs.AnchorStopID)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  tags,
			Level: sentry.LevelError,
		})
		return nil, err
	}

	gs.Logger.Info("Imported route catalog from GTFS", "routes", routes.Len())
	return routes, nil
}
