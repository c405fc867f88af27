package maps

import (
	"context"
	"net/url"
)

const (
	distanceMatrixPath = "/maps/api/distancematrix/json"

	DefaultTravelMode = "walking"
)

// DistanceMatrixRaw returns the Distance Matrix API response for the given
// origins and destinations untouched. An empty mode means walking.
func (c *Client) DistanceMatrixRaw(ctx context.Context, origins, destinations, mode string) ([]byte, int, error) {
	if mode == "" {
		mode = DefaultTravelMode
	}
	return c.get(ctx, distanceMatrixPath, url.Values{
		"origins":      {origins},
		"destinations": {destinations},
		"mode":         {mode},
	})
}
