package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ingestion pipeline and store boundary.
var (
	// ErrInvalidWeekday marks a raw record whose weekday field is absent,
	// non-numeric, or outside 1-7. The record is skipped, never fatal.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrMalformedRecord marks a raw record that cannot be serialized at all.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrFlightNotFound is returned by the store when no row matches an
	// identity tuple or filter.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrInvalidCriteria marks an invalid route-search request.
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrInvalidTargetDate marks a collection date that violates the
	// upstream scheduling constraint (must be at least 8 days ahead).
	ErrInvalidTargetDate = errors.New("invalid target date")

	// ErrStoreUnavailable marks a store that cannot be opened or probed.
	// It is fatal for the current run.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// SourceError wraps a failure from the upstream schedule source with enough
// context to decide whether the fetch should be retried.
type SourceError struct {
	// Airport is the IATA code that was being queried
	Airport string

	// Err is the underlying error
	Err error

	// Retryable indicates whether the failure is transient
	Retryable bool
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("schedule source [%s]: %v", e.Airport, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a non-retryable upstream error.
func NewSourceError(airport string, err error) *SourceError {
	return &SourceError{Airport: airport, Err: err, Retryable: false}
}

// NewRetryableSourceError creates a transient upstream error that the fetch
// policy may retry.
func NewRetryableSourceError(airport string, err error) *SourceError {
	return &SourceError{Airport: airport, Err: err, Retryable: true}
}

// IsRetryableSource reports whether err is a retryable SourceError.
func IsRetryableSource(err error) bool {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Retryable
	}
	return false
}
