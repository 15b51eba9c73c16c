package domain

import (
	"context"
	"time"
)

// FlightStore is the persistence boundary for canonical flight records.
// Implementations must return ErrFlightNotFound from FindByIdentity when no
// row matches, and must make Transaction execute its callback against a store
// handle whose writes commit or roll back atomically.
type FlightStore interface {
	// FindByIdentity looks up the row matching the identity tuple.
	FindByIdentity(ctx context.Context, identity FlightIdentity) (*Flight, error)

	// Insert creates a new canonical record.
	Insert(ctx context.Context, flight *Flight) error

	// UpdateWeekdays replaces a row's weekday set and refreshes updated_at.
	UpdateWeekdays(ctx context.Context, id uint, weekdays string, updatedAt time.Time) error

	// Search returns rows matching the route criteria, ordered by airline,
	// flight number, and route.
	Search(ctx context.Context, criteria RouteCriteria) ([]Flight, error)

	// FindByCodeshareGroup returns every marketing alias persisted for one
	// physical flight.
	FindByCodeshareGroup(ctx context.Context, groupID string) ([]Flight, error)

	// Summary returns aggregate collection statistics, optionally filtered
	// by airport and/or query type.
	Summary(ctx context.Context, filter SummaryFilter) (*StoreSummary, error)

	// Count returns the total number of canonical records.
	Count(ctx context.Context) (int64, error)

	// Transaction runs fn against a transactional store handle. Any error
	// returned by fn rolls the whole transaction back.
	Transaction(ctx context.Context, fn func(tx FlightStore) error) error
}

// SummaryFilter narrows Summary to one airport and/or query type.
// Zero values mean "no filter".
type SummaryFilter struct {
	AirportCode string
	QueryType   string
}

// StoreSummary describes the accumulated collection state.
type StoreSummary struct {
	// TotalFlights is the number of canonical rows
	TotalFlights int64 `json:"total_flights"`

	// Airports is the number of distinct queried airports
	Airports int64 `json:"airports"`

	// Airlines is the number of distinct selling airlines
	Airlines int64 `json:"airlines"`

	// FirstRecord and LatestRecord bound created_at over the selection
	FirstRecord  string `json:"first_record"`
	LatestRecord string `json:"latest_record"`
}
