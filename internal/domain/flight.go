// Package domain contains the core business entities and rules for the flight
// schedule collector. These entities are upstream-agnostic and form the
// foundation upon which all other components are built.
package domain

import "time"

// Flight is the canonical, persisted form of one scheduled flight as sold
// under one marketing identity. All textual identity, schedule, and location
// fields are stored strictly upper-cased; QueryType is stored lowercase.
//
// The tuple (MarketingAirlineIata, MarketingFlightNumber, DepIataCode,
// ArrIataCode, DepScheduledTime, QueryType) uniquely identifies a row; the
// unique composite index enforces it at the store level.
type Flight struct {
	// ID is the autogenerated primary key
	ID uint `gorm:"primaryKey" json:"id"`

	// DepIataCode is the IATA code of the departure airport
	DepIataCode string `gorm:"column:dep_iata_code;index:idx_flights_identity,unique" json:"dep_iata_code"`

	// ArrIataCode is the IATA code of the arrival airport
	ArrIataCode string `gorm:"column:arr_iata_code;index:idx_flights_identity,unique" json:"arr_iata_code"`

	// AirlineIataCode is the IATA code of the selling airline
	AirlineIataCode string `gorm:"column:airline_iata_code;index" json:"airline_iata_code"`

	// FlightIataNumber is the flight number the record is sold under (e.g. "PR215")
	FlightIataNumber string `gorm:"column:flight_iata_number;index" json:"flight_iata_number"`

	// DepScheduledTime is the scheduled departure time, local to the
	// departure airport, "HH:MM"
	DepScheduledTime string `gorm:"column:dep_scheduled_time;index:idx_flights_identity,unique" json:"dep_scheduled_time"`

	// ArrScheduledTime is the scheduled arrival time, local to the arrival airport
	ArrScheduledTime string `gorm:"column:arr_scheduled_time" json:"arr_scheduled_time"`

	// Weekdays is the deduplicated, ascending, comma-separated set of
	// weekdays (1-7) on which this exact flight has been observed.
	// Days are only ever added, never removed.
	Weekdays string `gorm:"column:weekdays" json:"weekdays"`

	// QueryType records which side of the route triggered the collection
	// ("departure" or "arrival")
	QueryType string `gorm:"column:query_type;index:idx_flights_identity,unique" json:"query_type"`

	// AirportCode is the airport that was queried when this record was collected
	AirportCode string `gorm:"column:airport_code;index" json:"airport_code"`

	DepTerminal string `gorm:"column:dep_terminal" json:"dep_terminal"`
	ArrTerminal string `gorm:"column:arr_terminal" json:"arr_terminal"`
	DepGate     string `gorm:"column:dep_gate" json:"dep_gate"`
	ArrGate     string `gorm:"column:arr_gate" json:"arr_gate"`

	AircraftModelCode string `gorm:"column:aircraft_model_code" json:"aircraft_model_code"`
	AircraftModelText string `gorm:"column:aircraft_model_text" json:"aircraft_model_text"`
	AirlineName       string `gorm:"column:airline_name" json:"airline_name"`

	// RawData preserves the full original upstream record for audit/debugging
	RawData string `gorm:"column:raw_data" json:"raw_data,omitempty"`

	// IsCodeshare is true when this row is a marketing alias of a flight
	// operated under a different identity
	IsCodeshare bool `gorm:"column:is_codeshare" json:"is_codeshare"`

	// OperatingAirlineIata and OperatingFlightNumber identify the flight
	// that physically operates the segment
	OperatingAirlineIata  string `gorm:"column:operating_airline_iata" json:"operating_airline_iata"`
	OperatingFlightNumber string `gorm:"column:operating_flight_number" json:"operating_flight_number"`

	// MarketingAirlineIata and MarketingFlightNumber identify the flight as
	// sold; equal to the operating fields when the row is not a codeshare
	MarketingAirlineIata  string `gorm:"column:marketing_airline_iata;index:idx_flights_identity,unique" json:"marketing_airline_iata"`
	MarketingFlightNumber string `gorm:"column:marketing_flight_number;index:idx_flights_identity,unique" json:"marketing_flight_number"`

	// CodeshareGroupID is OperatingAirlineIata + OperatingFlightNumber and
	// unifies every marketing alias of one physical flight
	CodeshareGroupID string `gorm:"column:codeshare_group_id;index" json:"codeshare_group_id"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName maps the model to the flights table.
func (Flight) TableName() string {
	return "flights"
}

// FlightIdentity is the tuple used to recognize the same flight record across
// repeated collections. Lookups match on the marketing identity so that each
// marketing alias of a physical flight keeps its own row and weekday set.
type FlightIdentity struct {
	MarketingAirlineIata  string
	MarketingFlightNumber string
	DepIataCode           string
	ArrIataCode           string
	DepScheduledTime      string
	QueryType             string
}

// Identity returns the flight's identity tuple.
func (f *Flight) Identity() FlightIdentity {
	return FlightIdentity{
		MarketingAirlineIata:  f.MarketingAirlineIata,
		MarketingFlightNumber: f.MarketingFlightNumber,
		DepIataCode:           f.DepIataCode,
		ArrIataCode:           f.ArrIataCode,
		DepScheduledTime:      f.DepScheduledTime,
		QueryType:             f.QueryType,
	}
}
