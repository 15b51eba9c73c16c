package domain

import "context"

// Direction selects which side of an airport's schedule is collected.
type Direction string

// Valid collection directions. The store persists them lowercase in the
// query_type column.
const (
	DirectionDeparture Direction = "departure"
	DirectionArrival   Direction = "arrival"
)

// IsValid checks whether the direction is a known value.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionDeparture, DirectionArrival:
		return true
	default:
		return false
	}
}

// String returns the direction as the lowercase string stored in query_type.
func (d Direction) String() string {
	return string(d)
}

// ScheduleQuery identifies one upstream fetch: an airport, a direction, and a
// target date. The upstream API only serves future schedules at least 8 days
// out; the source implementation enforces that constraint.
type ScheduleQuery struct {
	// AirportCode is the IATA code of the airport to query
	AirportCode string

	// Direction selects departures or arrivals at that airport
	Direction Direction

	// Date is the target schedule date in YYYY-MM-DD format
	Date string
}

//go:generate mockgen -source=source.go -destination=../../test/mock/source.go -package=mock

// ScheduleSource produces raw flight records for a schedule query. An empty
// slice with a nil error is a valid result (no schedule published for the
// airport/date); transient upstream failures are retried inside the
// implementation and surface as a SourceError only once retries are exhausted.
type ScheduleSource interface {
	// FetchSchedules returns the raw schedule batch for the query.
	FetchSchedules(ctx context.Context, query ScheduleQuery) ([]RawFlight, error)
}
