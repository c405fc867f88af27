package maps

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/dnaeon/go-vcr.v4/pkg/cassette"
	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"
)

// newReplayClient returns an HTTP client that serves responses from the
// named cassette under testdata/vcr. Requests are matched on method and
// full URL only.
func newReplayClient(t *testing.T, name string) *http.Client {
	t.Helper()

	rec, err := recorder.New(
		filepath.Join("testdata", "vcr", name),
		recorder.WithMode(recorder.ModeReplayOnly),
		recorder.WithMatcher(func(r *http.Request, i cassette.Request) bool {
			return r.Method == i.Method && r.URL.String() == i.URL
		}),
	)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	t.Cleanup(func() { rec.Stop() })

	return &http.Client{
		Transport: rec,
		Timeout:   10 * time.Second,
	}
}
