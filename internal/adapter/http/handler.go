package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
	"github.com/flight-data/flight-schedule-collector/internal/usecase"
)

// FlightHandler handles HTTP requests for the route search endpoints.
type FlightHandler struct {
	searcher *usecase.RouteSearcher
	log      *logger.Logger
}

// NewFlightHandler creates a new FlightHandler. A nil logger disables logging.
func NewFlightHandler(searcher *usecase.RouteSearcher, log *logger.Logger) *FlightHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FlightHandler{searcher: searcher, log: log}
}

// searchResult is the payload of a successful flight search.
type searchResult struct {
	Criteria domain.RouteCriteria `json:"criteria"`
	Count    int                  `json:"count"`
	Flights  []domain.Flight      `json:"flights"`
}

// SearchFlights handles GET /api/v1/flights.
// Filters: origin, destination, airline, flight_number (all optional).
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	criteria := domain.RouteCriteria{
		Origin:       c.QueryParam("origin"),
		Destination:  c.QueryParam("destination"),
		Airline:      c.QueryParam("airline"),
		FlightNumber: c.QueryParam("flight_number"),
	}

	flights, err := h.searcher.Search(c.Request().Context(), criteria)
	if err != nil {
		return h.handleError(c, err)
	}

	criteria.Normalize()
	return OK(c, searchResult{
		Criteria: criteria,
		Count:    len(flights),
		Flights:  flights,
	})
}

// CodeshareGroup handles GET /api/v1/flights/codeshare-group.
// Required query params: airline, flight_number (the operating identity).
func (h *FlightHandler) CodeshareGroup(c echo.Context) error {
	flights, err := h.searcher.CodeshareGroup(
		c.Request().Context(),
		c.QueryParam("airline"),
		c.QueryParam("flight_number"),
	)
	if err != nil {
		return h.handleError(c, err)
	}

	return OK(c, searchResult{
		Count:   len(flights),
		Flights: flights,
	})
}

// RouteSummary handles GET /api/v1/routes/:origin/:destination/summary.
func (h *FlightHandler) RouteSummary(c echo.Context) error {
	summary, err := h.searcher.SummarizeRoute(
		c.Request().Context(),
		c.Param("origin"),
		c.Param("destination"),
	)
	if err != nil {
		return h.handleError(c, err)
	}
	if summary.Flights == 0 {
		return NotFound(c, "no flights recorded for this route")
	}
	return OK(c, summary)
}

// CollectionSummary handles GET /api/v1/flights/summary.
// Optional filters: airport, query_type.
func (h *FlightHandler) CollectionSummary(c echo.Context) error {
	summary, err := h.searcher.CollectionSummary(c.Request().Context(), domain.SummaryFilter{
		AirportCode: c.QueryParam("airport"),
		QueryType:   c.QueryParam("query_type"),
	})
	if err != nil {
		return h.handleError(c, err)
	}
	return OK(c, summary)
}

// Health handles GET /health.
func (h *FlightHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleError maps domain errors to HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidCriteria) {
		return BadRequest(c, err.Error())
	}
	if errors.Is(err, domain.ErrFlightNotFound) {
		return NotFound(c, err.Error())
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("Route search failed")
	return InternalError(c)
}
