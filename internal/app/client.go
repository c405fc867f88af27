package app

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"tripassistant.ucmerced.edu/internal/metrics"
)

// latencyTrackingRoundTripper records every outgoing request in
// metrics.OutgoingLatency.
type latencyTrackingRoundTripper struct {
	next http.RoundTripper
}

func (rt *latencyTrackingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	// The query string carries API keys and place ids, so it never becomes
	// a label.
	metrics.OutgoingLatency.WithLabelValues(
		req.URL.Scheme+"://"+req.URL.Host+req.URL.Path,
		req.Method,
		status,
	).Observe(duration)

	return resp, err
}

// NewPooledClient returns the HTTP client shared by the Gemini, Maps and
// catalog fetches. Most traffic goes to two Google hosts, so idle
// connections per host are kept high. The overall timeout is generous
// because a grounded Gemini answer routinely takes several seconds.
func NewPooledClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 25 * time.Second,
	}

	return &http.Client{
		Transport: &latencyTrackingRoundTripper{next: transport},
		Timeout:   30 * time.Second,
	}
}
