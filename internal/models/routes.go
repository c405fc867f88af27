package models

// Route is a single directional loop. Stops are ordered along the direction
// of travel and the sequence wraps from the last stop back to the first.
type Route struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Direction    string `json:"direction"`
	AnchorStopID string `json:"anchor_stop_id"`
	Stops        []Stop `json:"stops"`
}

// RouteCatalog is an immutable, ordered collection of routes. Iteration order
// is insertion order and is the tie-break order for auto mode.
type RouteCatalog struct {
	routes []Route
	index  map[string]int
}

// NewRouteCatalog builds a catalog from routes in the given order. Later
// routes with a duplicate id are ignored.
func NewRouteCatalog(routes []Route) *RouteCatalog {
	c := &RouteCatalog{
		routes: make([]Route, 0, len(routes)),
		index:  make(map[string]int, len(routes)),
	}
	for _, route := range routes {
		if _, exists := c.index[route.ID]; exists {
			continue
		}
		c.index[route.ID] = len(c.routes)
		c.routes = append(c.routes, route)
	}
	return c
}

// Routes returns a copy of the routes in catalog order.
func (c *RouteCatalog) Routes() []Route {
	if c == nil {
		return nil
	}
	return append([]Route(nil), c.routes...)
}

// Route looks up a route by id.
func (c *RouteCatalog) Route(id string) (Route, bool) {
	if c == nil {
		return Route{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Route{}, false
	}
	return c.routes[i], true
}

// IDs returns the route ids in catalog order.
func (c *RouteCatalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.routes))
	for i, route := range c.routes {
		ids[i] = route.ID
	}
	return ids
}

// Len returns the number of routes in the catalog. A nil catalog is empty.
func (c *RouteCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.routes)
}
