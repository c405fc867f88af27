package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"tripassistant.ucmerced.edu/internal/middleware"
)

// Routes registers every endpoint and wraps the router in the Sentry, CORS
// and security header middleware. ctx bounds the background refresh of the
// cached /metrics exposition.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	router.HandlerFunc(http.MethodPost, "/v1/query", app.queryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/routes", app.listRoutesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/routes/:id", app.showRouteHandler)

	router.HandlerFunc(http.MethodGet, "/v1/api/geocode", app.geocodeHandler)
	router.HandlerFunc(http.MethodGet, "/v1/api/distance-matrix", app.distanceMatrixHandler)

	handler := middleware.SentryMiddleware(router)
	handler = middleware.CORS(app.ConfigService.Config.AllowedOrigins, handler)
	return middleware.SecurityHeaders(handler)
}
