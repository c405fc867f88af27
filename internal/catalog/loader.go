package catalog

import (
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"tripassistant.ucmerced.edu/internal/models"
)

// Format is the encoding of a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension. Anything that is not
// .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// FormatFromContentType picks a format from an HTTP Content-Type header,
// falling back to the URL path's extension.
func FormatFromContentType(contentType, urlPath string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")) {
		return FormatJSON
	}
	return FormatFromPath(urlPath)
}

var validate = validator.New()

// Parse decodes and validates a catalog document and builds the immutable
// catalog it describes, keeping document order.
func Parse(data []byte, format Format) (*models.RouteCatalog, error) {
	var doc Document

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	}

	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid route catalog: %w", err)
	}

	return Build(doc)
}

// Build converts a validated document into a RouteCatalog.
func Build(doc Document) (*models.RouteCatalog, error) {
	routes := make([]models.Route, 0, len(doc.Routes))
	for _, r := range doc.Routes {
		route := models.Route{
			ID:           r.ID,
			Label:        r.Label,
			Direction:    r.Direction,
			AnchorStopID: r.AnchorStopID,
			Stops:        make([]models.Stop, 0, len(r.Stops)),
		}
		for _, s := range r.Stops {
			kind, err := models.ParseStopKind(s.Kind)
			if err != nil {
				return nil, fmt.Errorf("route %s stop %s: %w", r.ID, s.ID, err)
			}
			stop := models.Stop{
				ID:      s.ID,
				Name:    s.Name,
				Address: s.Address,
				Kind:    kind,
			}
			if s.Coordinates != nil {
				stop.Coordinates = &models.Coordinates{Lat: s.Coordinates.Lat, Lng: s.Coordinates.Lng}
			}
			route.Stops = append(route.Stops, stop)
		}
		routes = append(routes, route)
	}
	return models.NewRouteCatalog(routes), nil
}

// CheckAnchors lists the routes whose anchor does not appear exactly once
// among their regular stops. Such routes still match destinations but can
// never produce a corridor.
func CheckAnchors(catalog *models.RouteCatalog) []string {
	var problems []string
	for _, route := range catalog.Routes() {
		count := 0
		for _, stop := range route.Stops {
			if stop.Eligible() && stop.ID == route.AnchorStopID {
				count++
			}
		}
		switch {
		case route.AnchorStopID == "":
			problems = append(problems, fmt.Sprintf("route %s has no anchor stop", route.ID))
		case count == 0:
			problems = append(problems, fmt.Sprintf("route %s anchor %q is not a regular stop on the route", route.ID, route.AnchorStopID))
		case count > 1:
			problems = append(problems, fmt.Sprintf("route %s anchor %q appears %d times", route.ID, route.AnchorStopID, count))
		}
	}
	return problems
}
