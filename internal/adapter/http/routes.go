package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers the route search API routes.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	// Health and metrics endpoints (no version prefix)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 group
	api := e.Group("/api/v1")

	flights := api.Group("/flights")
	flights.GET("", h.SearchFlights)
	flights.GET("/summary", h.CollectionSummary)
	flights.GET("/codeshare-group", h.CodeshareGroup)

	api.GET("/routes/:origin/:destination/summary", h.RouteSummary)
}
