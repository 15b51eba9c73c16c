// Package usecase contains the business logic of the schedule collector:
// normalization, deduplication/merge, batch ingestion, and route search.
package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
)

// Normalizer maps raw upstream flight records into canonical records. It is
// total over missing sub-objects (absent nested fields become empty strings)
// and rejects only records whose weekday is unusable or that cannot be
// serialized at all.
type Normalizer struct {
	log *logger.Logger
}

// NewNormalizer creates a Normalizer. A nil logger disables logging.
func NewNormalizer(log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{log: log}
}

// Normalize converts one raw record collected for the given direction and
// airport into a canonical Flight. The returned record carries a single-day
// weekday set; the merge engine unions it into any existing row.
//
// A wrapped ErrInvalidWeekday is returned for records failing the weekday
// data-quality gate; a wrapped ErrMalformedRecord when the raw record cannot
// be re-serialized for the audit column. Timestamps are left zero for the
// merge engine to fill.
func (n *Normalizer) Normalize(raw domain.RawFlight, direction domain.Direction, airportCode string) (*domain.Flight, error) {
	day, err := domain.ParseWeekday(raw.Weekday)
	if err != nil {
		return nil, err
	}

	airline := raw.AirlineOrEmpty()
	departure := raw.DepartureOrEmpty()
	arrival := raw.ArrivalOrEmpty()
	aircraft := raw.AircraftOrEmpty()
	number := raw.FlightNumberOrEmpty()

	// The feed anchors weekdays on the arrival day; departure-side
	// collections use the reported weekday as-is.
	if direction == domain.DirectionArrival {
		corrected := domain.CorrectWeekday(departure.ScheduledTime, arrival.ScheduledTime, day)
		if corrected != day {
			n.log.Debug().
				Str("flight", number.IataNumber).
				Str("dep_time", departure.ScheduledTime).
				Str("arr_time", arrival.ScheduledTime).
				Int("reported_weekday", day).
				Int("corrected_weekday", corrected).
				Msg("Overnight flight detected, weekday shifted to departure day")
			day = corrected
		}
	}

	rawData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}

	operatingAirline, operatingNumber := raw.OperatingIdentity()
	operatingAirlineIata := strings.ToUpper(operatingAirline.IataCode)
	operatingFlightNumber := strings.ToUpper(operatingNumber.IataNumber)

	marketingAirlineIata := strings.ToUpper(airline.IataCode)
	marketingFlightNumber := strings.ToUpper(number.IataNumber)

	return &domain.Flight{
		DepIataCode:      strings.ToUpper(departure.IataCode),
		ArrIataCode:      strings.ToUpper(arrival.IataCode),
		AirlineIataCode:  marketingAirlineIata,
		FlightIataNumber: marketingFlightNumber,

		DepScheduledTime: strings.ToUpper(departure.ScheduledTime),
		ArrScheduledTime: strings.ToUpper(arrival.ScheduledTime),
		Weekdays:         strconv.Itoa(day),

		QueryType:   strings.ToLower(direction.String()),
		AirportCode: strings.ToUpper(airportCode),

		DepTerminal: strings.ToUpper(departure.Terminal),
		ArrTerminal: strings.ToUpper(arrival.Terminal),
		DepGate:     strings.ToUpper(departure.Gate),
		ArrGate:     strings.ToUpper(arrival.Gate),

		AircraftModelCode: strings.ToUpper(aircraft.ModelCode),
		AircraftModelText: strings.ToUpper(aircraft.ModelText),
		AirlineName:       strings.ToUpper(airline.Name),

		RawData: string(rawData),

		IsCodeshare:           raw.IsCodeshare(),
		OperatingAirlineIata:  operatingAirlineIata,
		OperatingFlightNumber: operatingFlightNumber,
		MarketingAirlineIata:  marketingAirlineIata,
		MarketingFlightNumber: marketingFlightNumber,
		CodeshareGroupID:      operatingAirlineIata + operatingFlightNumber,
	}, nil
}
