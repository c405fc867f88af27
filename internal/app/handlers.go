package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/tidwall/gjson"
	"tripassistant.ucmerced.edu/internal/maps"
	"tripassistant.ucmerced.edu/internal/models"
)

const maxQueryBodyBytes = 1 << 16

// HealthStatus is the body of /v1/healthcheck. The service is ready once
// its route catalog holds at least one route.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Routes      int    `json:"routes"`
	Ready       bool   `json:"ready"`
}

// healthcheckHandler answers 500 while the catalog is empty so load
// balancers keep traffic away from an instance that cannot match anything.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	numRoutes := app.ConfigService.Config.GetCatalog().Len()
	ready := numRoutes > 0

	status := HealthStatus{
		Status:      "available",
		Environment: app.ConfigService.Config.Env,
		Version:     app.Version,
		Routes:      numRoutes,
		Ready:       ready,
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusInternalServerError
	}
	app.writeJSON(w, code, status)
}

type queryRequest struct {
	Query   string `json:"query"`
	Mode    string `json:"mode"`
	RouteID string `json:"route_id"`
}

// queryResponse adds a ready-made directions embed to a QueryResult when a
// stop was matched and a Maps key is configured.
type queryResponse struct {
	models.QueryResult
	EmbedURL string `json:"embed_url,omitempty"`
}

// queryHandler answers one trip question. Collaborator and matching
// failures are reported in the result's status, so any well-formed request
// gets a 200.
func (app *Application) queryHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodyBytes)

	var input queryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		app.badRequestResponse(w, r, "request body must be a JSON object with a query")
		return
	}

	text := strings.TrimSpace(input.Query)
	if text == "" {
		app.badRequestResponse(w, r, "query must not be empty")
		return
	}

	cfg := app.ConfigService.Config
	mode, err := models.ParseMode(input.Mode, input.RouteID, cfg.ResolveDefaultRoute())
	if err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	// Snapshot the catalog so a refresh mid-request cannot change the
	// answer under us.
	catalog := cfg.GetCatalog()
	result := app.QueryService.Answer(r.Context(), text, catalog, mode)

	resp := queryResponse{QueryResult: result}
	if result.Match != nil && app.Maps.APIKey != "" {
		if embed, ok := maps.DirectionsEmbedURL(app.Maps.APIKey, result.Corridor, result.Destinations[0].Coordinates); ok {
			resp.EmbedURL = embed
		}
	}
	app.writeJSON(w, http.StatusOK, resp)
}

// listRoutesHandler backs the frontend's route selector.
func (app *Application) listRoutesHandler(w http.ResponseWriter, r *http.Request) {
	cfg := app.ConfigService.Config
	app.writeJSON(w, http.StatusOK, envelope{
		"routes":        cfg.GetCatalog().Routes(),
		"default_route": cfg.ResolveDefaultRoute(),
	})
}

func (app *Application) showRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	route, ok := app.ConfigService.Config.GetCatalog().Route(id)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"route": route})
}

func (app *Application) geocodeHandler(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("place_id")
	if placeID == "" {
		app.badRequestResponse(w, r, "place_id parameter is required")
		return
	}

	data, status, err := app.Maps.GeocodeRaw(r.Context(), placeID)
	app.writeUpstream(w, r, data, status, err, "failed to geocode place")
}

func (app *Application) distanceMatrixHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	origins, destinations := params.Get("origins"), params.Get("destinations")
	if origins == "" || destinations == "" {
		app.badRequestResponse(w, r, "origins and destinations parameters are required")
		return
	}

	data, status, err := app.Maps.DistanceMatrixRaw(r.Context(), origins, destinations, params.Get("mode"))
	app.writeUpstream(w, r, data, status, err, "failed to fetch distance matrix")
}

// writeUpstream relays a Maps response body. A missing key, a transport
// error or a non-200 from Google all become a 500.
func (app *Application) writeUpstream(w http.ResponseWriter, r *http.Request, data []byte, status int, err error, message string) {
	if errors.Is(err, maps.ErrMissingAPIKey) {
		app.errorResponse(w, r, http.StatusInternalServerError, "Google Maps API key is not configured")
		return
	}
	if err != nil {
		app.serverErrorResponse(w, r, err, message)
		return
	}
	if status != http.StatusOK {
		app.Logger.Warn("Maps upstream returned an error", "path", r.URL.Path, "status", status)
		app.errorResponse(w, r, http.StatusInternalServerError, message)
		return
	}

	if apiStatus := gjson.GetBytes(data, "status").String(); apiStatus != "" && apiStatus != "OK" {
		app.Logger.Info("Maps upstream reported a non-OK status", "path", r.URL.Path, "api_status", apiStatus)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
