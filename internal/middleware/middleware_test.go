package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)

	SecurityHeaders(okHandler()).ServeHTTP(rr, req)

	want := map[string]string{
		"X-Content-Type-Options":       "nosniff",
		"Cache-Control":                "no-store, no-cache, must-revalidate",
		"Cross-Origin-Resource-Policy": "cross-origin",
		"Referrer-Policy":              "no-referrer",
	}
	for header, value := range want {
		if got := rr.Header().Get(header); got != value {
			t.Errorf("Expected %s %q, got %q", header, value, got)
		}
	}
	if rr.Body.String() != "ok" {
		t.Errorf("Expected wrapped handler to run, got body %q", rr.Body.String())
	}
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://trips.example.edu"}, okHandler())

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
	}{
		{"Allowed origin", http.MethodGet, "https://trips.example.edu", "https://trips.example.edu"},
		{"Disallowed origin", http.MethodGet, "https://evil.example.com", ""},
		{"Preflight", http.MethodOptions, "https://trips.example.edu", "https://trips.example.edu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/query", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Expected Access-Control-Allow-Origin %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}

func TestCORSAllowsAnyOriginWhenUnset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/routes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()

	CORS(nil, okHandler()).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
}

func TestSentryMiddlewarePassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/routes", nil)

	SentryMiddleware(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Errorf("Expected 200 ok, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestCachedPromHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cached_handler_test_total",
		Help: "Counter used to exercise the cached handler.",
	})
	registry.MustRegister(counter)
	counter.Inc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := NewCachedPromHandler(ctx, registry, time.Hour)

	scrape := func() string {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rr.Code)
		}
		return rr.Body.String()
	}

	if body := scrape(); !strings.Contains(body, "cached_handler_test_total 1") {
		t.Fatalf("Expected live exposition before first refresh, got %q", body)
	}

	handler.refresh()
	counter.Inc()

	body := scrape()
	if !strings.Contains(body, "cached_handler_test_total 1") {
		t.Errorf("Expected cached value 1 until the next refresh, got %q", body)
	}

	handler.refresh()
	if body := scrape(); !strings.Contains(body, "cached_handler_test_total 2") {
		t.Errorf("Expected refreshed value 2, got %q", body)
	}
}
