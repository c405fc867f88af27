package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets the browser frontend call the API. An empty allowedOrigins
// list allows any origin, which is what local development wants.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	})
	return c.Handler(next)
}
