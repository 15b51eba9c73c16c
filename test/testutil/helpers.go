// Package testutil provides test helper functions and raw-record builders
// for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
)

// RawRecord builds a complete raw schedule record with realistic values.
// Callers override fields through the option functions below.
func RawRecord(opts ...RawOption) domain.RawFlight {
	raw := domain.RawFlight{
		Weekday: "3",
		Airline: &domain.RawAirline{IataCode: "pr", Name: "philippine airlines"},
		Departure: &domain.RawStop{
			IataCode:      "mnl",
			ScheduledTime: "08:00",
			Terminal:      "2",
			Gate:          "12",
		},
		Arrival: &domain.RawStop{
			IataCode:      "pom",
			ScheduledTime: "10:30",
			Terminal:      "i",
		},
		Aircraft: &domain.RawAircraft{ModelCode: "a321", ModelText: "airbus a321-231"},
		Flight:   &domain.RawFlightNumber{IataNumber: "pr215"},
	}
	for _, opt := range opts {
		opt(&raw)
	}
	return raw
}

// RawOption mutates a raw record under construction.
type RawOption func(*domain.RawFlight)

// WithWeekday sets the reported weekday string.
func WithWeekday(day string) RawOption {
	return func(r *domain.RawFlight) { r.Weekday = day }
}

// WithAirline sets the selling airline.
func WithAirline(iata, name string) RawOption {
	return func(r *domain.RawFlight) {
		r.Airline = &domain.RawAirline{IataCode: iata, Name: name}
	}
}

// WithFlightNumber sets the record's flight number.
func WithFlightNumber(iataNumber string) RawOption {
	return func(r *domain.RawFlight) {
		r.Flight = &domain.RawFlightNumber{IataNumber: iataNumber}
	}
}

// WithDeparture sets the departure airport and scheduled time.
func WithDeparture(iata, scheduledTime string) RawOption {
	return func(r *domain.RawFlight) {
		r.Departure = &domain.RawStop{IataCode: iata, ScheduledTime: scheduledTime}
	}
}

// WithArrival sets the arrival airport and scheduled time.
func WithArrival(iata, scheduledTime string) RawOption {
	return func(r *domain.RawFlight) {
		r.Arrival = &domain.RawStop{IataCode: iata, ScheduledTime: scheduledTime}
	}
}

// WithCodeshare marks the record as a marketing alias of the given
// operating flight.
func WithCodeshare(operatingAirline, operatingNumber string) RawOption {
	return func(r *domain.RawFlight) {
		r.Codeshared = &domain.RawCodeshare{
			Airline: &domain.RawAirline{IataCode: operatingAirline},
			Flight:  &domain.RawFlightNumber{IataNumber: operatingNumber},
		}
	}
}

// WithoutAirline drops the airline sub-object entirely.
func WithoutAirline() RawOption {
	return func(r *domain.RawFlight) { r.Airline = nil }
}

// WithoutAircraft drops the aircraft sub-object entirely.
func WithoutAircraft() RawOption {
	return func(r *domain.RawFlight) { r.Aircraft = nil }
}

// OvernightRecord builds the canonical overnight case: a flight departing
// late in the evening and arriving early the next morning, reported from
// the arrival airport's schedule.
func OvernightRecord(weekday string) domain.RawFlight {
	return RawRecord(
		WithWeekday(weekday),
		WithDeparture("mnl", "23:50"),
		WithArrival("pom", "06:30"),
	)
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
