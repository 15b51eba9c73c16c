package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
)

// RouteSearcher answers read-only route and flight-pair queries against the
// accumulated store. It adds no invariants of its own; it only consumes what
// the ingestion pipeline built.
type RouteSearcher struct {
	store domain.FlightStore
	log   *logger.Logger
}

// NewRouteSearcher creates a RouteSearcher. A nil logger disables logging.
func NewRouteSearcher(store domain.FlightStore, log *logger.Logger) *RouteSearcher {
	if log == nil {
		log = logger.Nop()
	}
	return &RouteSearcher{store: store, log: log}
}

// Search returns flights matching the criteria regardless of which side of
// the route the data was collected from.
func (s *RouteSearcher) Search(ctx context.Context, criteria domain.RouteCriteria) ([]domain.Flight, error) {
	criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return s.store.Search(ctx, criteria)
}

// CodeshareGroup returns every marketing alias stored for the physical
// flight operated as airline+flightNumber.
func (s *RouteSearcher) CodeshareGroup(ctx context.Context, airline, flightNumber string) ([]domain.Flight, error) {
	airline = strings.ToUpper(strings.TrimSpace(airline))
	flightNumber = strings.ToUpper(strings.TrimSpace(flightNumber))
	if airline == "" || flightNumber == "" {
		return nil, fmt.Errorf("%w: operating airline and flight number are required", domain.ErrInvalidCriteria)
	}
	return s.store.FindByCodeshareGroup(ctx, airline+flightNumber)
}

// RouteSummary aggregates what the store knows about one origin/destination
// pair: the airlines flying it, the distinct sold flight numbers, equipment,
// weekday patterns, and which collections contributed the rows.
type RouteSummary struct {
	Route           string   `json:"route"`
	Flights         int      `json:"flights"`
	UniqueFlights   int      `json:"unique_flights"`
	Airlines        []string `json:"airlines"`
	AircraftTypes   []string `json:"aircraft_types"`
	WeekdayPatterns []string `json:"weekday_patterns"`
	QuerySources    []string `json:"query_sources"`
}

// SummarizeRoute builds a RouteSummary for the origin/destination pair.
func (s *RouteSearcher) SummarizeRoute(ctx context.Context, origin, destination string) (*RouteSummary, error) {
	criteria := domain.RouteCriteria{Origin: origin, Destination: destination}
	criteria.Normalize()
	if criteria.Origin == "" || criteria.Destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidCriteria)
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	flights, err := s.store.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	summary := &RouteSummary{
		Route:   criteria.Origin + "-" + criteria.Destination,
		Flights: len(flights),
	}

	airlines := map[string]bool{}
	numbers := map[string]bool{}
	aircraft := map[string]bool{}
	patterns := map[string]bool{}
	sources := map[string]bool{}

	for _, f := range flights {
		airlines[f.AirlineIataCode] = true
		numbers[f.FlightIataNumber] = true
		if f.AircraftModelText != "" {
			aircraft[f.AircraftModelText] = true
		}
		patterns[f.Weekdays] = true
		sources[f.QueryType+" at "+f.AirportCode] = true
	}

	summary.UniqueFlights = len(numbers)
	summary.Airlines = sortedKeys(airlines)
	summary.AircraftTypes = sortedKeys(aircraft)
	summary.WeekdayPatterns = sortedKeys(patterns)
	summary.QuerySources = sortedKeys(sources)

	return summary, nil
}

// CollectionSummary reports aggregate statistics over the accumulated store,
// optionally narrowed to one airport and/or query type.
func (s *RouteSearcher) CollectionSummary(ctx context.Context, filter domain.SummaryFilter) (*domain.StoreSummary, error) {
	filter.AirportCode = strings.ToUpper(strings.TrimSpace(filter.AirportCode))
	filter.QueryType = strings.ToLower(strings.TrimSpace(filter.QueryType))
	return s.store.Summary(ctx, filter)
}

// sortedKeys returns the map's keys in ascending order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
