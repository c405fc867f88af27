package metrics

import "tripassistant.ucmerced.edu/internal/models"

// RecordQuery exports the outcome of one answered query.
func RecordQuery(result models.QueryResult) {
	QueriesTotal.WithLabelValues(result.Mode, result.Status).Inc()
	DestinationsPerQuery.Observe(float64(len(result.Destinations)))
	if result.Match != nil {
		MatchDistanceMiles.WithLabelValues(result.Match.RouteID).Observe(result.Match.Distance)
	}
}

// RecordFailure counts one failed call to the named collaborator.
func RecordFailure(collaborator string) {
	CollaboratorFailures.WithLabelValues(collaborator).Inc()
}

// RecordCacheLookup counts a geocode cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	GeocodeCacheLookups.WithLabelValues(result).Inc()
}
