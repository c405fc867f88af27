package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal counts answered queries by route selection mode and outcome.
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripassistant_queries_total",
		Help: "Number of trip queries answered, by mode and status",
	}, []string{"mode", "status"})

	// MatchDistanceMiles is the walking distance between a destination and
	// its matched stop.
	MatchDistanceMiles = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripassistant_match_distance_miles",
		Help:    "Distance in miles from the destination to the matched stop",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route_id"})

	// DestinationsPerQuery is how many grounded places survived geocoding.
	DestinationsPerQuery = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tripassistant_destinations_per_query",
		Help:    "Number of geocoded destinations returned per query",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})
)

var (
	// OutgoingLatency tracks requests made to Gemini, Google Maps and
	// remote catalog sources.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripassistant_outgoing_request_duration_seconds",
		Help:    "Latency of outgoing HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})

	// CollaboratorFailures counts failed calls to external collaborators
	// ("grounding", "geocode").
	CollaboratorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripassistant_collaborator_failures_total",
		Help: "Number of failed calls to external collaborators",
	}, []string{"collaborator"})

	// GeocodeCacheLookups counts geocode cache hits and misses.
	GeocodeCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripassistant_geocode_cache_lookups_total",
		Help: "Geocode cache lookups by result (hit or miss)",
	}, []string{"result"})
)

var (
	// CatalogRoutes is the number of routes in the active catalog.
	CatalogRoutes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tripassistant_catalog_routes",
		Help: "Number of routes in the active route catalog",
	})
)
