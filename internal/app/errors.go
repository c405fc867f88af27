package app

import (
	"encoding/json"
	"net/http"

	"github.com/getsentry/sentry-go"
	"tripassistant.ucmerced.edu/internal/report"
	"tripassistant.ucmerced.edu/internal/utils"
)

type envelope map[string]interface{}

func (app *Application) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.Logger.Error("Failed to write JSON response", "error", err)
	}
}

func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, status, envelope{"error": message})
}

// serverErrorResponse logs and reports err; the client only sees message.
func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.Logger.Error(message, "error", err, "method", r.Method, "path", r.URL.Path)
	report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
		Tags:  utils.MakeMap("path", r.URL.Path),
		Level: sentry.LevelError,
	})
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusBadRequest, message)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, "method "+r.Method+" is not supported for this resource")
}
