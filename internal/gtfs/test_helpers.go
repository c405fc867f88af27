package gtfs

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

// campusFeed is a two-route static feed. C1 runs two trips, the longer of
// which loops back to its first stop; E1 has no coordinates for one stop.
var campusFeed = map[string]string{
	"agency.txt": `agency_id,agency_name,agency_url,agency_timezone
catracks,CatTracks,https://taps.ucmerced.edu,America/Los_Angeles
`,
	"routes.txt": `route_id,agency_id,route_short_name,route_long_name,route_type
C1,catracks,C1,Castle Loop,3
E1,catracks,E1,,3
X9,catracks,X9,Unused,3
`,
	"stops.txt": `stop_id,stop_name,stop_desc,stop_lat,stop_lon
utc,University Transit Center,Scholars Ln,37.36613,-120.42425
castle,Castle Commerce Center,,37.37570,-120.57330
cardella,Cardella & M St,,37.33245,-120.47562
mall,Merced Mall,,37.32770,-120.48470
`,
	"calendar.txt": `service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date
weekday,1,1,1,1,1,0,0,20250101,20351231
`,
	"trips.txt": `route_id,service_id,trip_id,trip_headsign
C1,weekday,c1_short,Castle
C1,weekday,c1_full,Castle Loop
E1,weekday,e1_am,Merced Mall
`,
	"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
c1_short,08:00:00,08:00:00,utc,1
c1_short,08:20:00,08:20:00,castle,2
c1_full,09:00:00,09:00:00,utc,1
c1_full,09:10:00,09:10:00,cardella,2
c1_full,09:25:00,09:25:00,castle,3
c1_full,09:50:00,09:50:00,utc,4
e1_am,07:00:00,07:00:00,utc,1
e1_am,07:15:00,07:15:00,mall,2
`,
}

// buildGTFSZip packs feed files into an in-memory GTFS bundle.
func buildGTFSZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to zip: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// setupGTFSServer serves data as a GTFS zip.
func setupGTFSServer(t *testing.T, data []byte) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write(data)
	}))
	t.Cleanup(ts.Close)
	return ts
}
