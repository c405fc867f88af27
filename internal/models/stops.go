package models

import (
	"encoding/json"
	"fmt"
)

// Coordinates is a WGS-84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// StopKind tags what a stop may be used for. Only regular stops are
// boarding/alighting points; checkpoints and request stops exist for
// display and route geometry.
type StopKind int

const (
	StopKindRegular StopKind = iota
	StopKindCheckpoint
	StopKindRequest
)

var stopKindNames = map[StopKind]string{
	StopKindRegular:    "regular",
	StopKindCheckpoint: "checkpoint",
	StopKindRequest:    "request",
}

func (k StopKind) String() string {
	if name, ok := stopKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StopKind(%d)", int(k))
}

// ParseStopKind maps a kind name to a StopKind. An empty name is regular.
func ParseStopKind(name string) (StopKind, error) {
	if name == "" {
		return StopKindRegular, nil
	}
	for kind, n := range stopKindNames {
		if n == name {
			return kind, nil
		}
	}
	return StopKindRegular, fmt.Errorf("unknown stop kind %q", name)
}

func (k StopKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *StopKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	kind, err := ParseStopKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Stop is a point of interest on a route.
type Stop struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Kind        StopKind     `json:"kind"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Eligible reports whether the stop can be used as a boarding or alighting
// point. Matching and corridor extraction both filter on it.
func (s Stop) Eligible() bool {
	return s.Kind == StopKindRegular
}

// HasCoordinates reports whether the stop carries a location.
func (s Stop) HasCoordinates() bool {
	return s.Coordinates != nil
}
