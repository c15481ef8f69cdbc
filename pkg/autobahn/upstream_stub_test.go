package autobahn

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stacklok/autobahn-mcp/pkg/config"
)

// upstreamStub is a fake verkehr.autobahn.de API for tests. It counts
// requests per path so tests can assert how many upstream calls an
// operation issued.
type upstreamStub struct {
	mu       sync.Mutex
	requests map[string]int
	mux      *http.ServeMux
	server   *httptest.Server
}

func newUpstreamStub(t *testing.T) *upstreamStub {
	t.Helper()

	stub := &upstreamStub{
		requests: make(map[string]int),
		mux:      http.NewServeMux(),
	}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.requests[r.URL.Path]++
		stub.mu.Unlock()
		stub.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(stub.server.Close)

	return stub
}

// handle installs a handler for one upstream path.
func (s *upstreamStub) handle(path string, handler http.HandlerFunc) {
	s.mux.HandleFunc(path, handler)
}

// handleRoads serves the enumeration endpoint with a fixed identifier list.
func (s *upstreamStub) handleRoads(roads ...string) {
	s.handle("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"roads": roads})
	})
}

// handleCategory serves one category endpoint with a raw JSON body.
func (s *upstreamStub) handleCategory(highway, service, body string) {
	s.handle("/"+highway+"/services/"+service, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

// count returns the number of requests seen for a path.
func (s *upstreamStub) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// categoryCount returns the number of requests across all category
// endpoints (everything except the enumeration endpoint).
func (s *upstreamStub) categoryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for path, n := range s.requests {
		if path != "/" {
			total += n
		}
	}
	return total
}

// config returns a configuration pointing at the stub with fast timeouts.
func (s *upstreamStub) config() *config.Config {
	return &config.Config{
		BaseURL:        s.server.URL,
		RequestTimeout: 2 * time.Second,
		RetryInterval:  time.Millisecond,
		CatalogTTL:     time.Minute,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// sampleWarnings is an upstream warnings payload with one fully populated
// record and one with the optional fields absent.
const sampleWarnings = `{
	"warning": [
		{
			"identifier": "V1dBUk5JTkdfXzE",
			"icon": "101",
			"title": "A1 | Bremen Richtung Hamburg",
			"subtitle": "Stau",
			"description": ["zwischen Stillhorn und AS HH-Harburg", "Stau"],
			"coordinate": {"lat": "53.4717", "long": "9.9936"},
			"startTimestamp": "2024-05-01T10:12:00.000+0200",
			"delayTimeValue": "12",
			"abnormalTrafficType": "Stau",
			"averageSpeed": "30",
			"geometry": {"type": "LineString", "coordinates": [[9.9936, 53.4717], [9.9812, 53.4655]]}
		},
		{
			"identifier": "V1dBUk5JTkdfXzI",
			"icon": "103",
			"title": "A1 | Hamburg Richtung Bremen",
			"subtitle": "Baustelle",
			"description": ["zwischen AS Rade und AS Hollenstedt"],
			"coordinate": {"lat": "53.3501", "long": "9.7544"}
		}
	]
}`

const sampleClosures = `{
	"closure": [
		{
			"identifier": "Q0xPU1VSRV9fMQ",
			"icon": "511",
			"title": "A1 | Bremen Richtung Hamburg",
			"subtitle": "Sperrung",
			"description": ["Anschlussstelle gesperrt"],
			"coordinate": {"lat": "53.2312", "long": "9.4401"},
			"startTimestamp": "2024-05-01T08:00:00.000+0200"
		}
	]
}`

const sampleStations = `{
	"electric_charging_station": [
		{
			"identifier": "U1RBVElPTl9fMQ",
			"icon": "charging_plug_strong",
			"title": "A1 | Raststätte Ostetal Nord",
			"subtitle": "Schnellladeeinrichtung",
			"description": ["Ladepunkte: 4", "Leistung: 150 kW"],
			"coordinate": {"lat": "53.2633", "long": "9.2553"}
		}
	]
}`
