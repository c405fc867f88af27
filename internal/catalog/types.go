package catalog

// Document is the root of a route catalog file.
type Document struct {
	Routes []RouteDoc `yaml:"routes" json:"routes" validate:"required,min=1,unique=ID,dive"`
}

// RouteDoc describes one loop route.
type RouteDoc struct {
	ID           string    `yaml:"id" json:"id" validate:"required"`
	Label        string    `yaml:"label" json:"label"`
	Direction    string    `yaml:"direction" json:"direction"`
	AnchorStopID string    `yaml:"anchor_stop_id" json:"anchor_stop_id"`
	Stops        []StopDoc `yaml:"stops" json:"stops" validate:"required,min=1,unique=ID,dive"`
}

// StopDoc describes one stop. Kind defaults to regular.
type StopDoc struct {
	ID          string          `yaml:"id" json:"id" validate:"required"`
	Name        string          `yaml:"name" json:"name" validate:"required"`
	Address     string          `yaml:"address" json:"address"`
	Kind        string          `yaml:"kind" json:"kind" validate:"omitempty,oneof=regular checkpoint request"`
	Coordinates *CoordinatesDoc `yaml:"coordinates" json:"coordinates"`
}

// CoordinatesDoc is a stop location in decimal degrees.
type CoordinatesDoc struct {
	Lat float64 `yaml:"lat" json:"lat" validate:"latitude"`
	Lng float64 `yaml:"lng" json:"lng" validate:"longitude"`
}
