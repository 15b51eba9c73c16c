package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawFlight_Accessors(t *testing.T) {
	t.Run("missing sub-objects return zero values", func(t *testing.T) {
		raw := RawFlight{Weekday: "3"}

		assert.Equal(t, RawAirline{}, raw.AirlineOrEmpty())
		assert.Equal(t, RawStop{}, raw.DepartureOrEmpty())
		assert.Equal(t, RawStop{}, raw.ArrivalOrEmpty())
		assert.Equal(t, RawAircraft{}, raw.AircraftOrEmpty())
		assert.Equal(t, RawFlightNumber{}, raw.FlightNumberOrEmpty())
	})

	t.Run("present sub-objects returned by value", func(t *testing.T) {
		raw := RawFlight{
			Airline:   &RawAirline{IataCode: "pr", Name: "philippine airlines"},
			Departure: &RawStop{IataCode: "mnl", ScheduledTime: "08:00"},
		}

		assert.Equal(t, "pr", raw.AirlineOrEmpty().IataCode)
		assert.Equal(t, "mnl", raw.DepartureOrEmpty().IataCode)
	})
}

func TestRawFlight_OperatingIdentity(t *testing.T) {
	t.Run("non-codeshare uses own identity", func(t *testing.T) {
		raw := RawFlight{
			Airline: &RawAirline{IataCode: "pr"},
			Flight:  &RawFlightNumber{IataNumber: "pr215"},
		}

		airline, number := raw.OperatingIdentity()
		assert.False(t, raw.IsCodeshare())
		assert.Equal(t, "pr", airline.IataCode)
		assert.Equal(t, "pr215", number.IataNumber)
	})

	t.Run("codeshare uses operating flight identity", func(t *testing.T) {
		raw := RawFlight{
			Airline: &RawAirline{IataCode: "qf"},
			Flight:  &RawFlightNumber{IataNumber: "qf399"},
			Codeshared: &RawCodeshare{
				Airline: &RawAirline{IataCode: "pr"},
				Flight:  &RawFlightNumber{IataNumber: "pr215"},
			},
		}

		airline, number := raw.OperatingIdentity()
		assert.True(t, raw.IsCodeshare())
		assert.Equal(t, "pr", airline.IataCode)
		assert.Equal(t, "pr215", number.IataNumber)
	})

	t.Run("codeshare with partial sub-objects does not panic", func(t *testing.T) {
		raw := RawFlight{
			Airline:    &RawAirline{IataCode: "qf"},
			Codeshared: &RawCodeshare{},
		}

		airline, number := raw.OperatingIdentity()
		assert.Equal(t, RawAirline{}, airline)
		assert.Equal(t, RawFlightNumber{}, number)
	})
}

func TestRawFlight_UnmarshalUpstreamShape(t *testing.T) {
	payload := `{
		"weekday": "5",
		"airline": {"iataCode": "pr", "name": "philippine airlines"},
		"departure": {"iataCode": "mnl", "scheduledTime": "23:50", "terminal": "2"},
		"arrival": {"iataCode": "pom", "scheduledTime": "06:30"},
		"flight": {"iataNumber": "pr215"},
		"codeshared": {
			"airline": {"iataCode": "pr"},
			"flight": {"iataNumber": "pr215"}
		}
	}`

	var raw RawFlight
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	assert.Equal(t, "5", raw.Weekday)
	assert.Equal(t, "mnl", raw.DepartureOrEmpty().IataCode)
	assert.Equal(t, "06:30", raw.ArrivalOrEmpty().ScheduledTime)
	assert.Equal(t, "2", raw.DepartureOrEmpty().Terminal)
	assert.True(t, raw.IsCodeshare())
}

func TestFlight_Identity(t *testing.T) {
	flight := Flight{
		MarketingAirlineIata:  "PR",
		MarketingFlightNumber: "PR215",
		DepIataCode:           "MNL",
		ArrIataCode:           "POM",
		DepScheduledTime:      "23:50",
		QueryType:             "arrival",
		Weekdays:              "4",
	}

	identity := flight.Identity()
	assert.Equal(t, FlightIdentity{
		MarketingAirlineIata:  "PR",
		MarketingFlightNumber: "PR215",
		DepIataCode:           "MNL",
		ArrIataCode:           "POM",
		DepScheduledTime:      "23:50",
		QueryType:             "arrival",
	}, identity)

	// Weekdays are mutable state, never part of the identity tuple.
	other := flight
	other.Weekdays = "4,5"
	assert.Equal(t, identity, other.Identity())
}
