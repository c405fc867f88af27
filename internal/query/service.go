package query

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"tripassistant.ucmerced.edu/internal/geo"
	"tripassistant.ucmerced.edu/internal/match"
	"tripassistant.ucmerced.edu/internal/metrics"
	"tripassistant.ucmerced.edu/internal/models"
	"tripassistant.ucmerced.edu/internal/report"
	"tripassistant.ucmerced.edu/internal/utils"
)

const (
	// MaxPlaces caps how many grounded places are geocoded per query.
	MaxPlaces = 5

	// ServiceAreaMargin grows the catalog's bounding box, in miles, before
	// deciding whether a destination is in the service area.
	ServiceAreaMargin = 1.0

	// DefaultTimeout bounds one Answer call, grounding and every geocode
	// together. It stays under the HTTP server's write timeout.
	DefaultTimeout = 40 * time.Second
)

// Grounder turns a free-text question into an answer and the places it
// cites.
type Grounder interface {
	Ground(ctx context.Context, text string, near models.Coordinates) (models.Grounding, error)
}

// Geocoder resolves a place id to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, placeID string) (models.Coordinates, error)
}

// Service answers trip queries against a route catalog.
type Service struct {
	Grounder Grounder
	Geocoder Geocoder
	Logger   *slog.Logger
	// Center biases grounding toward the area the catalog serves.
	Center models.Coordinates
	// Timeout bounds each Answer call. Zero means no extra deadline.
	Timeout time.Duration
}

func NewService(grounder Grounder, geocoder Geocoder, logger *slog.Logger, center models.Coordinates) *Service {
	return &Service{
		Grounder: grounder,
		Geocoder: geocoder,
		Logger:   logger,
		Center:   center,
		Timeout:  DefaultTimeout,
	}
}

// Answer grounds text into destinations and matches the first destination
// against catalog under mode.
//
// Collaborator failures never surface as errors: a grounding failure yields
// a result with no destinations, a place that cannot be geocoded is dropped,
// and a matching failure keeps the destinations but leaves Match nil. Status
// says which of these happened.
func (s *Service) Answer(ctx context.Context, text string, catalog *models.RouteCatalog, mode models.Mode) models.QueryResult {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	result := models.QueryResult{
		Destinations: []models.Destination{},
		Mode:         mode.String(),
		Status:       models.StatusNoLocations,
	}
	if !mode.Auto {
		result.RouteID = mode.RouteID
	}
	defer func() {
		metrics.RecordQuery(result)
		s.Logger.Info("Answered query",
			"mode", result.Mode,
			"status", result.Status,
			"route_id", result.RouteID,
			"destinations", len(result.Destinations))
	}()

	grounding, err := s.Grounder.Ground(ctx, text, s.Center)
	if err != nil {
		metrics.RecordFailure("grounding")
		s.Logger.Error("Failed to ground query", "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("collaborator", "grounding"),
			Level: sentry.LevelError,
		})
		return result
	}
	result.Text = grounding.Text
	report.AddBreadcrumb("query", "grounded", map[string]interface{}{"places": len(grounding.Places)})

	result.Destinations = s.resolve(ctx, grounding.Places)
	if len(result.Destinations) == 0 {
		return result
	}

	dest := result.Destinations[0].Coordinates
	if bbox, err := geo.ComputeBoundingBox(catalog); err == nil {
		result.InServiceArea = bbox.Expand(ServiceAreaMargin).Contains(dest)
	}

	best, err := match.SelectBest(dest, catalog, mode)
	if err != nil {
		result.Status = statusFor(err)
		s.Logger.Warn("No stop matched destination", "error", err, "mode", result.Mode)
		return result
	}

	route, _ := catalog.Route(best.RouteID)
	corridor := match.Corridor(route, best.Stop)

	result.Match = &best
	result.RouteID = best.RouteID
	result.Corridor = corridor
	result.Ranked = match.RankStops(route, dest)
	result.Waypoints = match.Waypoints(corridor)
	result.Status = models.StatusOK
	return result
}

// resolve geocodes up to MaxPlaces places, one at a time and in order,
// dropping any that cannot be located.
func (s *Service) resolve(ctx context.Context, places []models.Place) []models.Destination {
	if len(places) > MaxPlaces {
		places = places[:MaxPlaces]
	}

	destinations := make([]models.Destination, 0, len(places))
	for _, place := range places {
		if place.PlaceID == "" {
			s.Logger.Warn("Dropping place without a place id", "title", place.Title)
			continue
		}

		coords, err := s.Geocoder.Geocode(ctx, place.PlaceID)
		if err != nil {
			metrics.RecordFailure("geocode")
			s.Logger.Warn("Dropping place that failed to geocode", "title", place.Title, "place_id", place.PlaceID, "error", err)
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Tags: utils.MakeMap("collaborator", "geocode"),
				ExtraContext: map[string]interface{}{
					"place_id": place.PlaceID,
					"title":    place.Title,
				},
				Level: sentry.LevelWarning,
			})
			continue
		}
		if !geo.IsValidLatLon(coords.Lat, coords.Lng) {
			s.Logger.Warn("Dropping place with invalid coordinates", "title", place.Title, "lat", coords.Lat, "lng", coords.Lng)
			continue
		}

		destinations = append(destinations, models.Destination{
			Title:       place.Title,
			SourceURI:   place.URI,
			PlaceID:     place.PlaceID,
			Coordinates: coords,
		})
	}
	return destinations
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, match.ErrEmptyCatalog):
		return models.StatusEmptyCatalog
	case errors.Is(err, match.ErrUnknownRoute):
		return models.StatusUnknownRoute
	default:
		return models.StatusNoRoute
	}
}
