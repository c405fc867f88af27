package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"tripassistant.ucmerced.edu/internal/app"
	"tripassistant.ucmerced.edu/internal/config"
	"tripassistant.ucmerced.edu/internal/gtfs"
	"tripassistant.ucmerced.edu/internal/metrics"
	"tripassistant.ucmerced.edu/internal/models"
	"tripassistant.ucmerced.edu/internal/query"
	"tripassistant.ucmerced.edu/internal/report"
	"tripassistant.ucmerced.edu/internal/utils"
)

const version = "1.0.0"

const cacheDir = "cache"

func main() {
	var (
		port            = flag.Int("port", 4000, "API server port")
		env             = flag.String("env", "development", "Environment (development|staging|production)")
		routesFile      = flag.String("routes-file", "", "Path to a local YAML or JSON route catalog")
		routesURL       = flag.String("routes-url", "", "URL to a remote YAML or JSON route catalog")
		gtfsFile        = flag.String("gtfs-file", "", "Path to a static GTFS zip to import routes from")
		gtfsURL         = flag.String("gtfs-url", "", "URL to a static GTFS zip to import routes from")
		gtfsAnchor      = flag.String("gtfs-anchor-stop", "", "Stop id used as every GTFS route's anchor when the route serves it")
		defaultRoute    = flag.String("default-route", "", "Route used by manual queries that name none")
		groundingModel  = flag.String("grounding-model", "", "Gemini model used for grounding (default gemini-2.5-flash)")
		allowedOrigins  = flag.String("allowed-origins", "", "Comma-separated origins allowed by CORS (empty allows any)")
		refreshInterval = flag.Duration("refresh-interval", 10*time.Minute, "How often a remote catalog is re-fetched")
	)
	flag.Parse()

	src := config.CatalogSource{
		RoutesFile: *routesFile,
		RoutesURL:  *routesURL,
		GTFSFile:   *gtfsFile,
		GTFSURL:    *gtfsURL,
	}
	if err := config.ValidateConfigFlags(src, flag.Args()); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := report.SetupSentry(os.Getenv("SENTRY_DSN"), *env, version); err != nil {
		logger.Warn("Sentry is disabled", "error", err)
	}
	defer report.FlushSentry()
	report.ConfigureScope(*env, version, sourceName(src))

	cfg := config.NewConfig(*port, *env, nil)
	cfg.DefaultRoute = *defaultRoute
	cfg.GroundingModel = *groundingModel
	cfg.AllowedOrigins = splitOrigins(*allowedOrigins)
	cfg.RefreshInterval = *refreshInterval

	client := app.NewPooledClient()
	application := app.New(cfg, logger, client, version, app.APIKeys{
		Gemini: os.Getenv("GEMINI_API_KEY"),
		Maps:   os.Getenv("GOOGLE_MAPS_API_KEY"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	load, err := catalogLoader(src, application.ConfigService, gtfs.NewGtfsService(logger, client, cacheDir, *gtfsAnchor))
	if err != nil {
		logger.Error("Failed to prepare route catalog source", "error", err)
		os.Exit(1)
	}

	catalog, err := load(ctx)
	if err != nil {
		logger.Error("Failed to load route catalog", "error", err)
		report.FlushSentry()
		os.Exit(1)
	}
	if catalog.Len() == 0 {
		logger.Error("Route catalog has no routes")
		os.Exit(1)
	}
	cfg.UpdateCatalog(catalog)
	metrics.CatalogRoutes.Set(float64(catalog.Len()))
	logger.Info("Loaded route catalog", "routes", catalog.Len(), "default_route", cfg.ResolveDefaultRoute())

	if src.Remote() {
		go application.ConfigService.RefreshCatalog(ctx, load, cfg.RefreshInterval)
	}

	// Queries carry their own deadline; the write timeout leaves room to
	// encode the response after it.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: query.DefaultTimeout + 5*time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err)
		}
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("server stopped")
		return
	}
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}

// catalogLoader returns the loader for whichever catalog source was given.
// ValidateConfigFlags guarantees exactly one is set.
func catalogLoader(src config.CatalogSource, cs *config.ConfigService, gs *gtfs.GtfsService) (config.CatalogLoader, error) {
	switch {
	case src.RoutesFile != "":
		return func(context.Context) (*models.RouteCatalog, error) {
			return cs.LoadCatalogFromFile(src.RoutesFile)
		}, nil
	case src.RoutesURL != "":
		return cs.URLLoader(src.RoutesURL, os.Getenv("ROUTES_AUTH_USER"), os.Getenv("ROUTES_AUTH_PASS")), nil
	case src.GTFSFile != "":
		return func(context.Context) (*models.RouteCatalog, error) {
			return gs.LoadCatalogFromFile(src.GTFSFile)
		}, nil
	case src.GTFSURL != "":
		if err := utils.CreateCacheDirectory(gs.CacheDir); err != nil {
			return nil, err
		}
		return gs.URLLoader(src.GTFSURL), nil
	}
	return nil, errors.New("no route catalog source configured")
}

func sourceName(src config.CatalogSource) string {
	switch {
	case src.RoutesFile != "":
		return "routes_file"
	case src.RoutesURL != "":
		return "routes_url"
	case src.GTFSFile != "":
		return "gtfs_file"
	case src.GTFSURL != "":
		return "gtfs_url"
	}
	return "none"
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
