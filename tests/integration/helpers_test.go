// Package integration exercises the full offline-first stack: SQLite store,
// mutation manager, sync engine, and HTTP remote client against a stub
// service.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/christianbiango/team-up/internal/bus"
	"github.com/christianbiango/team-up/internal/connectivity"
	"github.com/christianbiango/team-up/internal/manager"
	"github.com/christianbiango/team-up/internal/notify"
	"github.com/christianbiango/team-up/internal/remote"
	"github.com/christianbiango/team-up/internal/sqlite"
	"github.com/christianbiango/team-up/internal/syncengine"
	"github.com/christianbiango/team-up/pkg/types"
)

// stubService is an in-memory REST backend with a failure switch.
type stubService struct {
	mu       sync.Mutex
	failing  bool
	requests int
	data     map[string]map[string]map[string]any // collection -> id -> record
	server   *httptest.Server
}

func newStubService(t *testing.T) *stubService {
	t.Helper()
	s := &stubService{data: make(map[string]map[string]map[string]any)}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{collection}", s.handleInsert)
	mux.HandleFunc("PATCH /{collection}/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /{collection}/{id}", s.handleDelete)
	mux.HandleFunc("GET /{collection}", s.handleQuery)
	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

// setFailing flips the outage switch: while failing, every request returns
// 503.
func (s *stubService) setFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

// requestCount returns the number of requests seen so far.
func (s *stubService) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// put seeds a record directly, bypassing HTTP.
func (s *stubService) put(collection string, record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]map[string]any)
	}
	s.data[collection][record["id"].(string)] = record
}

// get returns a stored record, or nil.
func (s *stubService) get(collection, id string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[collection][id]
}

// count returns the number of records stored in a collection.
func (s *stubService) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data[collection])
}

// gate records the request and reports whether the outage switch is on.
func (s *stubService) gate(w http.ResponseWriter) bool {
	s.mu.Lock()
	s.requests++
	failing := s.failing
	s.mu.Unlock()
	if failing {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}
	return failing
}

func (s *stubService) handleInsert(w http.ResponseWriter, r *http.Request) {
	if s.gate(w) {
		return
	}
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.put(r.PathValue("collection"), record)
	writeJSON(w, record)
}

func (s *stubService) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if s.gate(w) {
		return
	}
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	record["id"] = r.PathValue("id")
	s.put(r.PathValue("collection"), record)
	writeJSON(w, record)
}

func (s *stubService) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.gate(w) {
		return
	}
	s.mu.Lock()
	delete(s.data[r.PathValue("collection")], r.PathValue("id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *stubService) handleQuery(w http.ResponseWriter, r *http.Request) {
	if s.gate(w) {
		return
	}
	collection := r.PathValue("collection")
	s.mu.Lock()
	records := make([]map[string]any, 0, len(s.data[collection]))
	for _, record := range s.data[collection] {
		if matchesQuery(record, r.URL.Query()) {
			records = append(records, record)
		}
	}
	s.mu.Unlock()
	writeJSON(w, records)
}

// matchesQuery applies field=value filters, ignoring the ordering and range
// parameters the client adds.
func matchesQuery(record map[string]any, params map[string][]string) bool {
	for field, values := range params {
		if field == "order" || strings.HasSuffix(field, "_gte") {
			continue
		}
		got, ok := record[field].(string)
		if !ok || len(values) == 0 || got != values[0] {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// fixture wires the whole stack against a stub service.
type fixture struct {
	service  *stubService
	store    types.Store
	signal   *connectivity.Signal
	bus      *bus.Bus
	recorder *notify.Recorder
	manager  *manager.Manager
	engine   *syncengine.Engine
}

// newFixture builds the stack with the given initial connectivity. The
// periodic trigger is effectively disabled so tests control every pass.
func newFixture(t *testing.T, online bool) *fixture {
	t.Helper()
	service := newStubService(t)

	store := sqlite.NewBackend()
	if err := store.Open(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := zerolog.Nop()
	signal := connectivity.NewSignal(online)
	eventBus := bus.New()
	recorder := notify.NewRecorder()
	client := remote.NewHTTPClient(service.server.URL, "test-key", log)

	return &fixture{
		service:  service,
		store:    store,
		signal:   signal,
		bus:      eventBus,
		recorder: recorder,
		manager:  manager.New(store, client, signal, recorder, log),
		engine:   syncengine.New(store, client, signal, eventBus, recorder, log, 0),
	}
}
