// Package mock provides test doubles for the schedule collector.
// The in-memory Store is designed for use case testing where we need
// configurable behavior (injected errors, call counting) without a database.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
)

// Store is a configurable in-memory implementation of domain.FlightStore.
// It supports injected errors and call counting for testing merge and
// orchestration behavior. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*domain.Flight

	findErr   error
	insertErr error
	updateErr error
	txErr     error

	insertCalls int
	updateCalls int
	txCalls     int
}

// NewStore creates an empty in-memory store.
// It is configured using the builder pattern methods.
func NewStore() *Store {
	return &Store{
		nextID: 1,
		rows:   make(map[uint]*domain.Flight),
	}
}

// WithFindError configures FindByIdentity to return the given error
// instead of performing a lookup.
func (s *Store) WithFindError(err error) *Store {
	s.findErr = err
	return s
}

// WithInsertError configures Insert to fail with the given error.
func (s *Store) WithInsertError(err error) *Store {
	s.insertErr = err
	return s
}

// WithUpdateError configures UpdateWeekdays to fail with the given error.
func (s *Store) WithUpdateError(err error) *Store {
	s.updateErr = err
	return s
}

// WithTransactionError configures Transaction to fail without invoking
// its callback.
func (s *Store) WithTransactionError(err error) *Store {
	s.txErr = err
	return s
}

// Seed inserts flights directly, bypassing error injection. It assigns IDs
// and returns the store for chaining.
func (s *Store) Seed(flights ...domain.Flight) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range flights {
		f := flights[i]
		f.ID = s.nextID
		s.nextID++
		s.rows[f.ID] = &f
	}
	return s
}

// FindByIdentity implements domain.FlightStore.
func (s *Store) FindByIdentity(_ context.Context, identity domain.FlightIdentity) (*domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, f := range s.rows {
		if f.Identity() == identity {
			copied := *f
			return &copied, nil
		}
	}
	return nil, domain.ErrFlightNotFound
}

// Insert implements domain.FlightStore.
func (s *Store) Insert(_ context.Context, flight *domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertCalls++
	if s.insertErr != nil {
		return s.insertErr
	}
	flight.ID = s.nextID
	s.nextID++
	copied := *flight
	s.rows[copied.ID] = &copied
	return nil
}

// UpdateWeekdays implements domain.FlightStore.
func (s *Store) UpdateWeekdays(_ context.Context, id uint, weekdays string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	f, ok := s.rows[id]
	if !ok {
		return domain.ErrFlightNotFound
	}
	f.Weekdays = weekdays
	f.UpdatedAt = updatedAt
	return nil
}

// Search implements domain.FlightStore.
func (s *Store) Search(_ context.Context, criteria domain.RouteCriteria) ([]domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var flights []domain.Flight
	for _, f := range s.rows {
		if criteria.Origin != "" && f.DepIataCode != criteria.Origin {
			continue
		}
		if criteria.Destination != "" && f.ArrIataCode != criteria.Destination {
			continue
		}
		if criteria.Airline != "" && f.AirlineIataCode != criteria.Airline {
			continue
		}
		if criteria.FlightNumber != "" && f.FlightIataNumber != criteria.FlightNumber {
			continue
		}
		flights = append(flights, *f)
	}
	sortFlights(flights)
	return flights, nil
}

// FindByCodeshareGroup implements domain.FlightStore.
func (s *Store) FindByCodeshareGroup(_ context.Context, groupID string) ([]domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var flights []domain.Flight
	for _, f := range s.rows {
		if f.CodeshareGroupID == groupID {
			flights = append(flights, *f)
		}
	}
	sortFlights(flights)
	return flights, nil
}

// Summary implements domain.FlightStore.
func (s *Store) Summary(_ context.Context, filter domain.SummaryFilter) (*domain.StoreSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	airports := make(map[string]struct{})
	airlines := make(map[string]struct{})
	summary := &domain.StoreSummary{}
	var first, latest time.Time

	for _, f := range s.rows {
		if filter.AirportCode != "" && f.AirportCode != filter.AirportCode {
			continue
		}
		if filter.QueryType != "" && f.QueryType != filter.QueryType {
			continue
		}
		summary.TotalFlights++
		airports[f.AirportCode] = struct{}{}
		airlines[f.AirlineIataCode] = struct{}{}
		if first.IsZero() || f.CreatedAt.Before(first) {
			first = f.CreatedAt
		}
		if f.CreatedAt.After(latest) {
			latest = f.CreatedAt
		}
	}

	summary.Airports = int64(len(airports))
	summary.Airlines = int64(len(airlines))
	if !first.IsZero() {
		summary.FirstRecord = first.Format(time.RFC3339)
		summary.LatestRecord = latest.Format(time.RFC3339)
	}
	return summary, nil
}

// Count implements domain.FlightStore.
func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

// Transaction implements domain.FlightStore. The in-memory store applies
// writes directly, so the callback runs against the store itself; rollback
// semantics are not simulated.
func (s *Store) Transaction(_ context.Context, fn func(tx domain.FlightStore) error) error {
	s.mu.Lock()
	s.txCalls++
	err := s.txErr
	s.mu.Unlock()

	if err != nil {
		return err
	}
	return fn(s)
}

// InsertCalls returns the number of times Insert was called.
func (s *Store) InsertCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertCalls
}

// UpdateCalls returns the number of times UpdateWeekdays was called.
func (s *Store) UpdateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCalls
}

// TransactionCalls returns the number of times Transaction was called.
func (s *Store) TransactionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCalls
}

// All returns every stored flight, ordered for stable assertions.
func (s *Store) All() []domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights := make([]domain.Flight, 0, len(s.rows))
	for _, f := range s.rows {
		flights = append(flights, *f)
	}
	sortFlights(flights)
	return flights
}

// sortFlights orders flights the same way the database store does.
func sortFlights(flights []domain.Flight) {
	sort.Slice(flights, func(i, j int) bool {
		a := strings.Join([]string{flights[i].AirlineIataCode, flights[i].FlightIataNumber, flights[i].DepIataCode, flights[i].ArrIataCode}, "|")
		b := strings.Join([]string{flights[j].AirlineIataCode, flights[j].FlightIataNumber, flights[j].DepIataCode, flights[j].ArrIataCode}, "|")
		return a < b
	})
}

// Ensure Store implements domain.FlightStore at compile time.
var _ domain.FlightStore = (*Store)(nil)
