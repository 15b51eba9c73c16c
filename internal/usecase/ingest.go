package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/metrics"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/timeutil"
)

// MergeOutcome describes what the merge engine did with one canonical record.
type MergeOutcome string

// Merge outcomes.
const (
	// OutcomeInserted means the identity tuple was unseen and a row was created
	OutcomeInserted MergeOutcome = "inserted"

	// OutcomeWeekdaysExtended means an existing row gained at least one weekday
	OutcomeWeekdaysExtended MergeOutcome = "extended"

	// OutcomeUnchanged means the row already covered the observed weekday
	OutcomeUnchanged MergeOutcome = "unchanged"
)

// IngestionSummary accumulates per-outcome counts for one raw batch.
type IngestionSummary struct {
	// Retrieved is the number of raw records handed to the pipeline
	Retrieved int `json:"retrieved"`

	// Inserted is the number of newly created rows
	Inserted int `json:"inserted"`

	// Extended is the number of existing rows whose weekday set grew
	Extended int `json:"extended"`

	// Duplicates is the number of records already fully covered by the store
	Duplicates int `json:"duplicates"`

	// Skipped is the number of records rejected by the weekday quality gate
	Skipped int `json:"skipped"`

	// Failed is the number of records that errored during normalize/merge
	Failed int `json:"failed"`
}

// Stored returns the number of rows inserted or updated, the value the
// batch entry point reports to callers.
func (s *IngestionSummary) Stored() int {
	return s.Inserted + s.Extended
}

// Add merges another summary's counts into this one.
func (s *IngestionSummary) Add(other IngestionSummary) {
	s.Retrieved += other.Retrieved
	s.Inserted += other.Inserted
	s.Extended += other.Extended
	s.Duplicates += other.Duplicates
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Ingestor drives raw batches through the Normalizer and the merge engine,
// isolating per-record failures so one bad upstream record never aborts a
// multi-hundred-record batch.
type Ingestor struct {
	store      domain.FlightStore
	normalizer *Normalizer
	clock      timeutil.Clock
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// NewIngestor creates an Ingestor. A nil clock falls back to the system
// clock; nil metrics and logger are replaced with no-ops.
func NewIngestor(store domain.FlightStore, clock timeutil.Clock, m *metrics.Metrics, log *logger.Logger) *Ingestor {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ingestor{
		store:      store,
		normalizer: NewNormalizer(log),
		clock:      clock,
		metrics:    m,
		log:        log,
	}
}

// Ingest processes one raw batch collected for the given direction and
// airport. All merges run inside a single store transaction so the batch
// commits once at the end; records that fail normalization or merge are
// logged, counted, and skipped. The returned error is non-nil only for
// store-level failures, which abort the batch with zero effect.
func (in *Ingestor) Ingest(ctx context.Context, raws []domain.RawFlight, direction domain.Direction, airportCode string) (*IngestionSummary, error) {
	start := time.Now()
	summary := &IngestionSummary{Retrieved: len(raws)}

	err := in.store.Transaction(ctx, func(tx domain.FlightStore) error {
		for _, raw := range raws {
			flight, err := in.normalizer.Normalize(raw, direction, airportCode)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidWeekday) {
					summary.Skipped++
					in.metrics.RecordsIngested.WithLabelValues("skipped").Inc()
					in.log.Warn().
						Str("flight", raw.FlightNumberOrEmpty().IataNumber).
						Err(err).
						Msg("Record rejected by weekday quality gate")
					continue
				}
				summary.Failed++
				in.metrics.RecordsIngested.WithLabelValues("failed").Inc()
				in.log.Error().
					Str("flight", raw.FlightNumberOrEmpty().IataNumber).
					Err(err).
					Msg("Record could not be normalized")
				continue
			}

			outcome, err := in.merge(ctx, tx, flight)
			if err != nil {
				summary.Failed++
				in.metrics.RecordsIngested.WithLabelValues("failed").Inc()
				in.log.Error().
					Str("flight", flight.FlightIataNumber).
					Err(err).
					Msg("Record could not be merged")
				continue
			}

			in.metrics.RecordsIngested.WithLabelValues(string(outcome)).Inc()
			switch outcome {
			case OutcomeInserted:
				summary.Inserted++
			case OutcomeWeekdaysExtended:
				summary.Extended++
			case OutcomeUnchanged:
				summary.Duplicates++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingest batch for %s %s: %w", airportCode, direction, err)
	}

	in.metrics.IngestDuration.Observe(time.Since(start).Seconds())
	return summary, nil
}

// merge reconciles one canonical record against the store: unseen identity
// tuples are inserted with the single observed weekday; known tuples have
// the weekday unioned into their set. The union is commutative and
// idempotent, so replaying a batch converges to the same stored state.
func (in *Ingestor) merge(ctx context.Context, tx domain.FlightStore, flight *domain.Flight) (MergeOutcome, error) {
	existing, err := tx.FindByIdentity(ctx, flight.Identity())
	if errors.Is(err, domain.ErrFlightNotFound) {
		now := in.clock.Now().UTC()
		flight.CreatedAt = now
		flight.UpdatedAt = now
		if err := tx.Insert(ctx, flight); err != nil {
			return "", err
		}
		return OutcomeInserted, nil
	}
	if err != nil {
		return "", err
	}

	// The normalizer emits a single-day set for new observations.
	day, err := domain.ParseWeekday(flight.Weekdays)
	if err != nil {
		return "", err
	}

	merged := domain.MergeWeekdays(existing.Weekdays, day)
	if merged == existing.Weekdays {
		return OutcomeUnchanged, nil
	}

	if err := tx.UpdateWeekdays(ctx, existing.ID, merged, in.clock.Now().UTC()); err != nil {
		return "", err
	}
	return OutcomeWeekdaysExtended, nil
}
