package models

// Place is one location the grounding collaborator surfaced for a query.
// PlaceID is the bare Google place id, without the "places/" resource
// prefix.
type Place struct {
	Title   string `json:"title"`
	URI     string `json:"uri"`
	PlaceID string `json:"place_id,omitempty"`
}

// Grounding is the free-text answer to a query plus the places it cites,
// in the order they were cited.
type Grounding struct {
	Text   string  `json:"text"`
	Places []Place `json:"places"`
}
