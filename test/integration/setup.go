// Package integration provides helpers and integration tests for the schedule
// collector. Integration tests verify that the pipeline works end to end:
// upstream fetch, normalization, merge into a real SQLite store, and the
// search API on top of it.
package integration

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/flight-data/flight-schedule-collector/internal/adapter/http"
	"github.com/flight-data/flight-schedule-collector/internal/adapter/store"
	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/timeutil"
	"github.com/flight-data/flight-schedule-collector/internal/usecase"
)

// FrozenNow is the fixed "now" used by every integration test clock.
const FrozenNow = "2026-08-20T10:00:00Z"

// FirstTargetDate is FrozenNow plus the 8-day upstream minimum.
const FirstTargetDate = "2026-08-28"

// NewTestStore opens a migrated store on a throwaway SQLite file.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, closeFn, err := store.Connect(filepath.Join(t.TempDir(), "flights.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return s
}

// NewTestCollector wires a collector over the given source and store with a
// frozen clock and no-op observability.
func NewTestCollector(source domain.ScheduleSource, flightStore domain.FlightStore, cfg usecase.CollectorConfig) *usecase.Collector {
	clock := timeutil.NewMockClockFromString(FrozenNow)
	ingestor := usecase.NewIngestor(flightStore, clock, nil, nil)
	return usecase.NewCollector(source, ingestor, cfg, clock, nil, nil)
}

// TestServer wraps an Echo instance serving the search API over a store.
type TestServer struct {
	Echo *echo.Echo
}

// NewTestServer builds the search API on top of the given store.
func NewTestServer(flightStore domain.FlightStore) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewFlightHandler(usecase.NewRouteSearcher(flightStore, nil), nil)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{Echo: e}
}

// Get executes a GET request and returns the recorded response.
func (ts *TestServer) Get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)
	return rec
}
