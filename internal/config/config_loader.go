package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"tripassistant.ucmerced.edu/internal/catalog"
	"tripassistant.ucmerced.edu/internal/metrics"
	"tripassistant.ucmerced.edu/internal/models"
	"tripassistant.ucmerced.edu/internal/report"
	"tripassistant.ucmerced.edu/internal/utils"
)

// CatalogSource names where the route catalog comes from. Exactly one field
// must be set.
type CatalogSource struct {
	RoutesFile string
	RoutesURL  string
	GTFSFile   string
	GTFSURL    string
}

// Remote reports whether the catalog is fetched over HTTP and so can be
// refreshed.
func (s CatalogSource) Remote() bool {
	return s.RoutesURL != "" || s.GTFSURL != ""
}

// CatalogLoader produces a fresh route catalog from wherever it lives.
type CatalogLoader func(ctx context.Context) (*models.RouteCatalog, error)

// ValidateConfigFlags ensures that exactly one catalog source is specified:
// "--routes-file", "--routes-url", "--gtfs-file" or "--gtfs-url". Positional
// arguments are rejected as well.
func ValidateConfigFlags(src CatalogSource, args []string) error {
	set := 0
	for _, v := range []string{src.RoutesFile, src.RoutesURL, src.GTFSFile, src.GTFSURL} {
		if v != "" {
			set++
		}
	}
	if set == 0 {
		return fmt.Errorf("no route catalog provided, one of --routes-file, --routes-url, --gtfs-file or --gtfs-url must be specified")
	}
	if set > 1 || len(args) > 0 {
		return fmt.Errorf("only one of --routes-file, --routes-url, --gtfs-file or --gtfs-url can be specified")
	}
	return nil
}

// refreshCatalog periodically reloads the route catalog and swaps it into
// cfg. A failed reload keeps the previous catalog in place; the error is
// logged and reported to Sentry and the loop carries on.
//
// The routine stops when ctx is canceled.
func refreshCatalog(ctx context.Context, load CatalogLoader, cfg *Config, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping catalog refresh routine")
			return
		case <-ticker.C:
			routes, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Tags:  utils.MakeMap("component", "catalog_refresh"),
					Level: sentry.LevelError,
				})
				logger.Error("Failed to refresh route catalog", "error", err)
				continue
			}
			cfg.UpdateCatalog(routes)
			metrics.CatalogRoutes.Set(float64(routes.Len()))
			logger.Info("Successfully refreshed route catalog", "routes", routes.Len())
		}
	}
}

// loadCatalogFromFile reads a YAML or JSON route document from disk. The
// encoding is picked from the file extension.
func loadCatalogFromFile(filePath string) (*models.RouteCatalog, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	routes, err := catalog.Parse(data, catalog.FormatFromPath(filePath))
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// loadCatalogFromURL fetches a route document from a remote HTTP(S)
// endpoint, using optional basic authentication. The encoding follows the
// response Content-Type, falling back to the URL path's extension.
func loadCatalogFromURL(ctx context.Context, client *http.Client, rawURL, authUser, authPass string, maxRetries int) (*models.RouteCatalog, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote routes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote routes returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote routes: %w", err)
	}

	format := catalog.FormatFromContentType(resp.Header.Get("Content-Type"), parsed.Path)
	return catalog.Parse(data, format)
}
