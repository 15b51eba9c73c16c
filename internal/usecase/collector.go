package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/metrics"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/timeutil"
)

// Direction value accepted by the collector on top of the two store
// directions: collect both sides of each airport's schedule.
const DirectionBoth = "both"

// CollectorConfig describes one collection run.
type CollectorConfig struct {
	// Airports is the list of IATA codes to query
	Airports []string

	// Direction is "departure", "arrival", or "both"
	Direction string

	// DaysAhead is the offset of the first target date from today.
	// The upstream API requires at least 8.
	DaysAhead int

	// CollectDays is the number of consecutive target dates to collect
	CollectDays int

	// RequestDelay is the fixed pause between upstream requests
	RequestDelay time.Duration
}

// BatchReport records the outcome of one airport/direction/date fetch.
type BatchReport struct {
	AirportCode string           `json:"airport_code"`
	Direction   domain.Direction `json:"direction"`
	Date        string           `json:"date"`
	Summary     IngestionSummary `json:"summary"`
}

// CollectionReport aggregates a whole run.
type CollectionReport struct {
	// RunID tags all log lines of this run
	RunID string `json:"run_id"`

	// Batches holds one entry per completed fetch+ingest
	Batches []BatchReport `json:"batches"`

	// FailedFetches counts upstream queries that returned no data after retries
	FailedFetches int `json:"failed_fetches"`

	// Totals sums all batch summaries
	Totals IngestionSummary `json:"totals"`
}

// Collector runs a full collection pass: for each target date and airport it
// fetches the raw schedule batch from the upstream source and hands it to
// the Ingestor. Upstream failures for one airport are logged and skipped;
// store-level failures abort the run.
type Collector struct {
	source   domain.ScheduleSource
	ingestor *Ingestor
	clock    timeutil.Clock
	metrics  *metrics.Metrics
	log      *logger.Logger
	cfg      CollectorConfig
}

// NewCollector creates a Collector. Nil clock/metrics/logger fall back to
// system clock and no-ops.
func NewCollector(source domain.ScheduleSource, ingestor *Ingestor, cfg CollectorConfig, clock timeutil.Clock, m *metrics.Metrics, log *logger.Logger) *Collector {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.CollectDays < 1 {
		cfg.CollectDays = 1
	}
	return &Collector{
		source:   source,
		ingestor: ingestor,
		clock:    clock,
		metrics:  m,
		log:      log,
		cfg:      cfg,
	}
}

// directions expands the configured direction into the store directions to
// collect.
func (c *Collector) directions() ([]domain.Direction, error) {
	switch c.cfg.Direction {
	case DirectionBoth:
		return []domain.Direction{domain.DirectionDeparture, domain.DirectionArrival}, nil
	default:
		d := domain.Direction(c.cfg.Direction)
		if !d.IsValid() {
			return nil, fmt.Errorf("unknown collection direction %q", c.cfg.Direction)
		}
		return []domain.Direction{d}, nil
	}
}

// Run executes the configured collection pass and returns the aggregated
// report. The returned report is valid (possibly partial) even when an error
// is returned.
func (c *Collector) Run(ctx context.Context) (*CollectionReport, error) {
	report := &CollectionReport{RunID: uuid.NewString()}

	directions, err := c.directions()
	if err != nil {
		return report, err
	}

	log := c.log.WithRunID(report.RunID)
	firstDate := c.clock.Now().AddDate(0, 0, c.cfg.DaysAhead)

	log.Info().
		Strs("airports", c.cfg.Airports).
		Str("direction", c.cfg.Direction).
		Str("first_date", firstDate.Format("2006-01-02")).
		Int("collect_days", c.cfg.CollectDays).
		Msg("Starting collection run")

	for dayOffset := 0; dayOffset < c.cfg.CollectDays; dayOffset++ {
		date := firstDate.AddDate(0, 0, dayOffset).Format("2006-01-02")

		for _, airport := range c.cfg.Airports {
			for _, direction := range directions {
				if err := ctx.Err(); err != nil {
					return report, err
				}

				batchLog := log.WithAirport(airport).WithDirection(direction.String())
				query := domain.ScheduleQuery{
					AirportCode: airport,
					Direction:   direction,
					Date:        date,
				}

				raws, err := c.source.FetchSchedules(ctx, query)
				if err != nil {
					report.FailedFetches++
					c.metrics.SourceRequests.WithLabelValues("error").Inc()
					batchLog.Error().Str("date", date).Err(err).
						Msg("No data retrieved, skipping airport")
					continue
				}
				if len(raws) == 0 {
					c.metrics.SourceRequests.WithLabelValues("empty").Inc()
					batchLog.Info().Str("date", date).Msg("No schedule published")
					continue
				}
				c.metrics.SourceRequests.WithLabelValues("ok").Inc()

				summary, err := c.ingestor.Ingest(ctx, raws, direction, airport)
				if err != nil {
					// Store-level failure: abort the run with the partial report.
					return report, err
				}

				report.Batches = append(report.Batches, BatchReport{
					AirportCode: airport,
					Direction:   direction,
					Date:        date,
					Summary:     *summary,
				})
				report.Totals.Add(*summary)

				batchLog.Info().
					Str("date", date).
					Int("retrieved", summary.Retrieved).
					Int("inserted", summary.Inserted).
					Int("extended", summary.Extended).
					Int("duplicates", summary.Duplicates).
					Int("skipped", summary.Skipped).
					Int("failed", summary.Failed).
					Msg("Batch ingested")

				if c.cfg.RequestDelay > 0 {
					select {
					case <-ctx.Done():
						return report, ctx.Err()
					case <-time.After(c.cfg.RequestDelay):
					}
				}
			}
		}
	}

	log.Info().
		Int("batches", len(report.Batches)).
		Int("failed_fetches", report.FailedFetches).
		Int("retrieved", report.Totals.Retrieved).
		Int("stored", report.Totals.Stored()).
		Msg("Collection run completed")

	return report, nil
}
