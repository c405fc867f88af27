package models

import "fmt"

// Mode selects how a query picks its route. It travels with each request;
// there is no process-wide route selection.
type Mode struct {
	Auto    bool
	RouteID string
}

// AutoMode compares every route in the catalog.
func AutoMode() Mode {
	return Mode{Auto: true}
}

// ManualMode pins the query to one route.
func ManualMode(routeID string) Mode {
	return Mode{RouteID: routeID}
}

// ParseMode builds a Mode from its wire representation. An empty mode name
// means manual; a manual mode without a route id falls back to defaultRoute.
func ParseMode(name, routeID, defaultRoute string) (Mode, error) {
	switch name {
	case "auto":
		return AutoMode(), nil
	case "", "manual":
		if routeID == "" {
			routeID = defaultRoute
		}
		if routeID == "" {
			return Mode{}, fmt.Errorf("manual mode requires a route id")
		}
		return ManualMode(routeID), nil
	default:
		return Mode{}, fmt.Errorf("unknown mode %q", name)
	}
}

func (m Mode) String() string {
	if m.Auto {
		return "auto"
	}
	return "manual"
}

// Destination is a resolved place a query may be answered with.
type Destination struct {
	Title       string      `json:"title"`
	SourceURI   string      `json:"source_uri"`
	PlaceID     string      `json:"place_id,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// MatchResult is the winning stop on a route for one destination.
// Distance is in miles, Duration in whole walking minutes.
type MatchResult struct {
	RouteID  string  `json:"route_id"`
	Stop     Stop    `json:"stop"`
	Distance float64 `json:"distance"`
	Duration int     `json:"duration"`
}

// StopDistance is one usable stop ranked by its distance to a destination.
type StopDistance struct {
	Stop     Stop    `json:"stop"`
	Distance float64 `json:"distance"`
	Duration int     `json:"duration"`
}

// Query outcomes reported in QueryResult.Status.
const (
	StatusOK           = "ok"
	StatusNoLocations  = "no_locations"
	StatusNoRoute      = "no_route"
	StatusUnknownRoute = "unknown_route"
	StatusEmptyCatalog = "empty_catalog"
)

// QueryResult is everything presentation needs to render one answer.
// Ranked lists every usable stop on the winning route, nearest first.
type QueryResult struct {
	Text          string         `json:"text"`
	Destinations  []Destination  `json:"destinations"`
	Match         *MatchResult   `json:"match,omitempty"`
	Corridor      []Stop         `json:"corridor,omitempty"`
	Ranked        []StopDistance `json:"ranked,omitempty"`
	Waypoints     []Coordinates  `json:"waypoints,omitempty"`
	RouteID       string         `json:"route_id,omitempty"`
	Mode          string         `json:"mode"`
	Status        string         `json:"status"`
	InServiceArea bool           `json:"in_service_area"`
}
