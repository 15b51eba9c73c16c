package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/usecase"
	"github.com/flight-data/flight-schedule-collector/test/mock"
)

func newTestServer(store domain.FlightStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := NewFlightHandler(usecase.NewRouteSearcher(store, nil), nil)
	RegisterRoutes(e, handler)
	return e
}

func testStore() *mock.Store {
	return mock.NewStore().Seed(
		domain.Flight{
			DepIataCode: "MNL", ArrIataCode: "POM",
			AirlineIataCode: "PR", FlightIataNumber: "PR215",
			MarketingAirlineIata: "PR", MarketingFlightNumber: "PR215",
			OperatingAirlineIata: "PR", OperatingFlightNumber: "PR215",
			CodeshareGroupID: "PRPR215",
			DepScheduledTime: "23:50", ArrScheduledTime: "06:30",
			Weekdays: "4,5", QueryType: "arrival", AirportCode: "POM",
		},
		domain.Flight{
			DepIataCode: "POM", ArrIataCode: "MNL",
			AirlineIataCode: "PR", FlightIataNumber: "PR216",
			MarketingAirlineIata: "PR", MarketingFlightNumber: "PR216",
			OperatingAirlineIata: "PR", OperatingFlightNumber: "PR216",
			CodeshareGroupID: "PRPR216",
			DepScheduledTime: "11:30", ArrScheduledTime: "14:00",
			Weekdays: "1,3", QueryType: "departure", AirportCode: "POM",
		},
	)
}

func doRequest(e *echo.Echo, path string) (*httptest.ResponseRecorder, Response) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope Response
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return rec, envelope
}

func TestSearchFlights(t *testing.T) {
	e := newTestServer(testStore())

	t.Run("filters by route", func(t *testing.T) {
		rec, envelope := doRequest(e, "/api/v1/flights?origin=mnl&destination=pom")

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, envelope.Success)

		payload, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var result struct {
			Criteria domain.RouteCriteria `json:"criteria"`
			Count    int                  `json:"count"`
			Flights  []domain.Flight      `json:"flights"`
		}
		require.NoError(t, json.Unmarshal(payload, &result))

		assert.Equal(t, 1, result.Count)
		assert.Equal(t, "MNL", result.Criteria.Origin)
		require.Len(t, result.Flights, 1)
		assert.Equal(t, "PR215", result.Flights[0].FlightIataNumber)
	})

	t.Run("no filters return everything", func(t *testing.T) {
		rec, envelope := doRequest(e, "/api/v1/flights")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, envelope.Success)
	})

	t.Run("invalid criteria rejected with 400", func(t *testing.T) {
		rec, envelope := doRequest(e, "/api/v1/flights?origin=MNLA")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, CodeInvalidRequest, envelope.Error.Code)
	})
}

func TestCodeshareGroup(t *testing.T) {
	e := newTestServer(testStore())

	t.Run("returns group members", func(t *testing.T) {
		rec, envelope := doRequest(e, "/api/v1/flights/codeshare-group?airline=pr&flight_number=pr215")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, envelope.Success)
	})

	t.Run("missing identity rejected", func(t *testing.T) {
		rec, envelope := doRequest(e, "/api/v1/flights/codeshare-group?airline=pr")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, CodeInvalidRequest, envelope.Error.Code)
	})
}

func TestRouteSummary(t *testing.T) {
	e := newTestServer(testStore())

	t.Run("known route", func(t *testing.T) {
		rec, envelope := doRequest(e, "/api/v1/routes/MNL/POM/summary")

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, envelope.Success)

		payload, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var summary usecase.RouteSummary
		require.NoError(t, json.Unmarshal(payload, &summary))

		assert.Equal(t, "MNL-POM", summary.Route)
		assert.Equal(t, 1, summary.Flights)
		assert.Equal(t, []string{"PR"}, summary.Airlines)
	})

	t.Run("unknown route is 404", func(t *testing.T) {
		rec, envelope := doRequest(e, "/api/v1/routes/SYD/AKL/summary")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, CodeNotFound, envelope.Error.Code)
	})

	t.Run("malformed airport is 400", func(t *testing.T) {
		rec, _ := doRequest(e, "/api/v1/routes/MNLA/POM/summary")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCollectionSummary(t *testing.T) {
	e := newTestServer(testStore())

	rec, envelope := doRequest(e, "/api/v1/flights/summary?airport=pom&query_type=ARRIVAL")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var summary domain.StoreSummary
	require.NoError(t, json.Unmarshal(payload, &summary))

	assert.Equal(t, int64(1), summary.TotalFlights)
}

func TestHealth(t *testing.T) {
	e := newTestServer(testStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestServer(testStore())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}
