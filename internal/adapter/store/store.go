package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
)

// Store is the GORM-backed implementation of domain.FlightStore.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an opened database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByIdentity looks up the row matching the identity tuple. Matching is on
// the marketing identity so each codeshare alias keeps its own row.
func (s *Store) FindByIdentity(ctx context.Context, identity domain.FlightIdentity) (*domain.Flight, error) {
	var flight domain.Flight
	err := s.db.WithContext(ctx).
		Where("marketing_airline_iata = ?", identity.MarketingAirlineIata).
		Where("marketing_flight_number = ?", identity.MarketingFlightNumber).
		Where("dep_iata_code = ?", identity.DepIataCode).
		Where("arr_iata_code = ?", identity.ArrIataCode).
		Where("dep_scheduled_time = ?", identity.DepScheduledTime).
		Where("query_type = ?", identity.QueryType).
		First(&flight).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// Insert creates a new canonical record.
func (s *Store) Insert(ctx context.Context, flight *domain.Flight) error {
	return s.db.WithContext(ctx).Create(flight).Error
}

// UpdateWeekdays replaces a row's weekday set and refreshes updated_at.
func (s *Store) UpdateWeekdays(ctx context.Context, id uint, weekdays string, updatedAt time.Time) error {
	return s.db.WithContext(ctx).
		Model(&domain.Flight{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"weekdays":   weekdays,
			"updated_at": updatedAt,
		}).Error
}

// Search returns rows matching the criteria, ordered deterministically by
// airline, flight number, and route.
func (s *Store) Search(ctx context.Context, criteria domain.RouteCriteria) ([]domain.Flight, error) {
	q := s.db.WithContext(ctx).Model(&domain.Flight{})

	if criteria.Origin != "" {
		q = q.Where("dep_iata_code = ?", criteria.Origin)
	}
	if criteria.Destination != "" {
		q = q.Where("arr_iata_code = ?", criteria.Destination)
	}
	if criteria.Airline != "" {
		q = q.Where("airline_iata_code = ?", criteria.Airline)
	}
	if criteria.FlightNumber != "" {
		q = q.Where("flight_iata_number = ?", criteria.FlightNumber)
	}

	var flights []domain.Flight
	err := q.Order("airline_iata_code, flight_iata_number, dep_iata_code, arr_iata_code").
		Find(&flights).Error
	return flights, err
}

// FindByCodeshareGroup returns every marketing alias persisted for one
// physical flight.
func (s *Store) FindByCodeshareGroup(ctx context.Context, groupID string) ([]domain.Flight, error) {
	var flights []domain.Flight
	err := s.db.WithContext(ctx).
		Where("codeshare_group_id = ?", groupID).
		Order("marketing_airline_iata, marketing_flight_number, query_type").
		Find(&flights).Error
	return flights, err
}

// Summary returns aggregate collection statistics, optionally filtered by
// airport and/or query type.
func (s *Store) Summary(ctx context.Context, filter domain.SummaryFilter) (*domain.StoreSummary, error) {
	q := s.db.WithContext(ctx).Model(&domain.Flight{})
	if filter.AirportCode != "" {
		q = q.Where("airport_code = ?", filter.AirportCode)
	}
	if filter.QueryType != "" {
		q = q.Where("query_type = ?", filter.QueryType)
	}

	var row struct {
		TotalFlights int64
		Airports     int64
		Airlines     int64
		FirstRecord  sql.NullString
		LatestRecord sql.NullString
	}
	err := q.Select(
		"COUNT(*) AS total_flights, " +
			"COUNT(DISTINCT airport_code) AS airports, " +
			"COUNT(DISTINCT airline_iata_code) AS airlines, " +
			"MIN(created_at) AS first_record, " +
			"MAX(created_at) AS latest_record",
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &domain.StoreSummary{
		TotalFlights: row.TotalFlights,
		Airports:     row.Airports,
		Airlines:     row.Airlines,
		FirstRecord:  row.FirstRecord.String,
		LatestRecord: row.LatestRecord.String,
	}, nil
}

// Count returns the total number of canonical records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Flight{}).Count(&total).Error
	return total, err
}

// Transaction runs fn against a transactional store handle; any error from
// fn rolls the whole transaction back. The identity-tuple lookup-then-write
// of the merge engine runs inside this boundary, backed by the unique index,
// so concurrent runs cannot lose updates.
func (s *Store) Transaction(ctx context.Context, fn func(tx domain.FlightStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ensure Store implements the domain boundary at compile time.
var _ domain.FlightStore = (*Store)(nil)
