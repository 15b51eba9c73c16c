package domain

// RawFlight is a single schedule record as returned by the upstream flight-data
// API. Every nested object is optional: the feed regularly omits terminals,
// gates, aircraft details, and occasionally whole sub-objects. Accessors return
// zero-valued sub-objects for missing fields so normalization never has to
// nil-check.
type RawFlight struct {
	// Weekday is the day-of-week the schedule applies to ("1".."7", Monday=1).
	// The API delivers it as a string.
	Weekday string `json:"weekday"`

	// Airline identifies the selling airline of this record
	Airline *RawAirline `json:"airline,omitempty"`

	// Departure describes the departure airport side
	Departure *RawStop `json:"departure,omitempty"`

	// Arrival describes the arrival airport side
	Arrival *RawStop `json:"arrival,omitempty"`

	// Aircraft describes the equipment, when reported
	Aircraft *RawAircraft `json:"aircraft,omitempty"`

	// Flight carries the flight number of this record
	Flight *RawFlightNumber `json:"flight,omitempty"`

	// Codeshared is present when this record is a marketing alias; it names
	// the flight that physically operates the segment
	Codeshared *RawCodeshare `json:"codeshared,omitempty"`
}

// RawAirline is the airline sub-object of a raw record.
type RawAirline struct {
	IataCode string `json:"iataCode"`
	Name     string `json:"name"`
}

// RawStop is the departure or arrival sub-object of a raw record.
type RawStop struct {
	IataCode      string `json:"iataCode"`
	ScheduledTime string `json:"scheduledTime"`
	Terminal      string `json:"terminal"`
	Gate          string `json:"gate"`
}

// RawAircraft is the aircraft sub-object of a raw record.
type RawAircraft struct {
	ModelCode string `json:"modelCode"`
	ModelText string `json:"modelText"`
}

// RawFlightNumber is the flight sub-object of a raw record.
type RawFlightNumber struct {
	IataNumber string `json:"iataNumber"`
}

// RawCodeshare describes the operating flight behind a marketing record.
type RawCodeshare struct {
	Airline *RawAirline      `json:"airline,omitempty"`
	Flight  *RawFlightNumber `json:"flight,omitempty"`
}

// AirlineOrEmpty returns the airline sub-object or a zero value if absent.
func (r RawFlight) AirlineOrEmpty() RawAirline {
	if r.Airline == nil {
		return RawAirline{}
	}
	return *r.Airline
}

// DepartureOrEmpty returns the departure sub-object or a zero value if absent.
func (r RawFlight) DepartureOrEmpty() RawStop {
	if r.Departure == nil {
		return RawStop{}
	}
	return *r.Departure
}

// ArrivalOrEmpty returns the arrival sub-object or a zero value if absent.
func (r RawFlight) ArrivalOrEmpty() RawStop {
	if r.Arrival == nil {
		return RawStop{}
	}
	return *r.Arrival
}

// AircraftOrEmpty returns the aircraft sub-object or a zero value if absent.
func (r RawFlight) AircraftOrEmpty() RawAircraft {
	if r.Aircraft == nil {
		return RawAircraft{}
	}
	return *r.Aircraft
}

// FlightNumberOrEmpty returns the flight sub-object or a zero value if absent.
func (r RawFlight) FlightNumberOrEmpty() RawFlightNumber {
	if r.Flight == nil {
		return RawFlightNumber{}
	}
	return *r.Flight
}

// OperatingIdentity returns the airline and flight number that physically
// operate this record's segment. For codeshare records that is the codeshared
// sub-object; otherwise the record's own identity.
func (r RawFlight) OperatingIdentity() (RawAirline, RawFlightNumber) {
	if r.Codeshared != nil {
		airline := RawAirline{}
		if r.Codeshared.Airline != nil {
			airline = *r.Codeshared.Airline
		}
		number := RawFlightNumber{}
		if r.Codeshared.Flight != nil {
			number = *r.Codeshared.Flight
		}
		return airline, number
	}
	return r.AirlineOrEmpty(), r.FlightNumberOrEmpty()
}

// IsCodeshare reports whether this record is a marketing alias of another
// operating flight.
func (r RawFlight) IsCodeshare() bool {
	return r.Codeshared != nil
}
