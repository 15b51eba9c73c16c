package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Weekday bounds (Monday=1 .. Sunday=7).
const (
	MinWeekday = 1
	MaxWeekday = 7
)

// ParseWeekday parses the raw weekday string from an upstream record.
// It returns a wrapped ErrInvalidWeekday for absent, non-numeric, or
// out-of-range values; such records are rejected before normalization.
func ParseWeekday(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: weekday is empty", ErrInvalidWeekday)
	}
	day, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: weekday %q is not numeric", ErrInvalidWeekday, raw)
	}
	if day < MinWeekday || day > MaxWeekday {
		return 0, fmt.Errorf("%w: weekday %d out of range 1-7", ErrInvalidWeekday, day)
	}
	return day, nil
}

// CorrectWeekday re-derives the departure-anchored weekday for records
// collected on the arrival side. The upstream feed anchors the weekday of an
// overnight flight on its arrival day; when the scheduled departure time is
// later in the clock than the scheduled arrival time the flight crosses
// midnight and the weekday is shifted back one day, wrapping Monday to Sunday.
//
// Times that are missing or unparseable leave the reported weekday unchanged:
// a record is never dropped solely because a time failed to parse.
//
// The arrival-anchored assumption was reverse-engineered from observed feed
// behavior and is not documented by the provider; callers should log when the
// correction fires.
func CorrectWeekday(depScheduledTime, arrScheduledTime string, reported int) int {
	depMinutes, ok := parseClockMinutes(depScheduledTime)
	if !ok {
		return reported
	}
	arrMinutes, ok := parseClockMinutes(arrScheduledTime)
	if !ok {
		return reported
	}

	if depMinutes <= arrMinutes {
		return reported
	}

	corrected := reported - 1
	if corrected < MinWeekday {
		corrected = MaxWeekday
	}
	return corrected
}

// parseClockMinutes converts "HH:MM" (or "HHMM") to minutes since midnight.
func parseClockMinutes(clock string) (int, bool) {
	clock = strings.ReplaceAll(strings.TrimSpace(clock), ":", "")
	if len(clock) < 4 {
		return 0, false
	}
	hours, err := strconv.Atoi(clock[:2])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(clock[2:4])
	if err != nil {
		return 0, false
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// MergeWeekdays unions a newly observed weekday into an existing weekday set
// and re-serializes it as a deduplicated, ascending, comma-separated string.
// The operation is commutative and idempotent, so replaying a batch converges
// to the same stored value. Unparseable members of the existing set are
// preserved as-is at the front rather than silently dropped.
func MergeWeekdays(existing string, day int) string {
	if strings.TrimSpace(existing) == "" {
		return strconv.Itoa(day)
	}

	seen := map[int]bool{day: true}
	var junk []string
	for _, part := range strings.Split(existing, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			junk = append(junk, part)
			continue
		}
		seen[n] = true
	}

	days := make([]int, 0, len(seen))
	for n := range seen {
		days = append(days, n)
	}
	sort.Ints(days)

	parts := make([]string, 0, len(junk)+len(days))
	parts = append(parts, junk...)
	for _, n := range days {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}
