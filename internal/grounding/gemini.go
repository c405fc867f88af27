package grounding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
	"tripassistant.ucmerced.edu/internal/models"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"

	unknownTitle = "Unknown Location"
	placePrefix  = "places/"
)

// DefaultCenter biases grounding toward the UC Merced campus.
var DefaultCenter = models.Coordinates{Lat: 37.30293194200341, Lng: -120.48662202501602}

// GeminiClient answers free-text questions with Gemini, grounded in Google
// Maps results near a point.
type GeminiClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeminiClient(apiKey, model string, client *http.Client) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    DefaultBaseURL,
		HTTPClient: client,
	}
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      c.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: strings.TrimRight(c.BaseURL, "/") + "/"},
	})
}

// Ground sends text to Gemini with the Google Maps tool enabled and returns
// the answer together with the places it was grounded on.
func (c *GeminiClient) Ground(ctx context.Context, text string, near models.Coordinates) (models.Grounding, error) {
	if c.APIKey == "" {
		return models.Grounding{}, fmt.Errorf("gemini API key not configured")
	}

	client, err := c.sdk(ctx)
	if err != nil {
		return models.Grounding{}, fmt.Errorf("failed to create gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(near.Lat),
					Longitude: genai.Ptr(near.Lng),
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.Model, genai.Text(text), config)
	if err != nil {
		return models.Grounding{}, fmt.Errorf("failed to call gemini: %w", err)
	}

	return fromResponse(resp), nil
}

// ParseResponse extracts the answer text and cited map places from a
// generateContent response body.
func ParseResponse(data []byte) (models.Grounding, error) {
	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.Grounding{}, fmt.Errorf("gemini response is not valid JSON: %w", err)
	}
	return fromResponse(&resp), nil
}

func fromResponse(resp *genai.GenerateContentResponse) models.Grounding {
	grounding := models.Grounding{Places: []models.Place{}}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return grounding
	}
	candidate := resp.Candidates[0]

	if candidate.Content != nil {
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text.WriteString(part.Text)
		}
		grounding.Text = text.String()
	}

	if candidate.GroundingMetadata == nil {
		return grounding
	}
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Maps == nil {
			continue
		}
		title := chunk.Maps.Title
		if title == "" {
			title = unknownTitle
		}
		grounding.Places = append(grounding.Places, models.Place{
			Title:   title,
			URI:     chunk.Maps.URI,
			PlaceID: strings.TrimPrefix(chunk.Maps.PlaceID, placePrefix),
		})
	}
	return grounding
}
