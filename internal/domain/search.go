package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// RouteCriteria defines the parameters for a route search against the
// accumulated store. Every field is optional; empty criteria match all rows.
type RouteCriteria struct {
	// Origin is the IATA code of the departure airport (e.g. "MNL")
	Origin string `json:"origin,omitempty"`

	// Destination is the IATA code of the arrival airport (e.g. "POM")
	Destination string `json:"destination,omitempty"`

	// Airline is the IATA code of the selling airline (e.g. "PR")
	Airline string `json:"airline,omitempty"`

	// FlightNumber is the flight number, with or without the airline prefix
	FlightNumber string `json:"flight_number,omitempty"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// airlineCodeRegex matches valid IATA airline codes (2 alphanumerics).
var airlineCodeRegex = regexp.MustCompile(`^[A-Z0-9]{2}$`)

// Normalize upper-cases all fields and, when an airline is given and the
// flight number lacks its prefix, prepends it ("215" with airline "PR"
// becomes "PR215") so lookups match the stored convention.
func (c *RouteCriteria) Normalize() {
	c.Origin = strings.ToUpper(strings.TrimSpace(c.Origin))
	c.Destination = strings.ToUpper(strings.TrimSpace(c.Destination))
	c.Airline = strings.ToUpper(strings.TrimSpace(c.Airline))
	c.FlightNumber = strings.ToUpper(strings.TrimSpace(c.FlightNumber))

	if c.Airline != "" && c.FlightNumber != "" && !strings.HasPrefix(c.FlightNumber, c.Airline) {
		c.FlightNumber = c.Airline + c.FlightNumber
	}
}

// Validate checks the criteria after normalization. Returns a wrapped
// ErrInvalidCriteria error when a provided field is malformed.
func (c *RouteCriteria) Validate() error {
	if c.Origin != "" && !airportCodeRegex.MatchString(c.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidCriteria, c.Origin)
	}
	if c.Destination != "" && !airportCodeRegex.MatchString(c.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidCriteria, c.Destination)
	}
	if c.Airline != "" && !airlineCodeRegex.MatchString(c.Airline) {
		return fmt.Errorf("%w: airline must be a valid 2-character IATA code, got %q", ErrInvalidCriteria, c.Airline)
	}
	return nil
}

// IsEmpty reports whether no filter field is set.
func (c *RouteCriteria) IsEmpty() bool {
	return c.Origin == "" && c.Destination == "" && c.Airline == "" && c.FlightNumber == ""
}
