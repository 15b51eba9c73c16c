// Package aviationedge implements the upstream schedule source against the
// Aviation Edge future-schedules API.
package aviationedge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/retry"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/timeutil"
)

// SourceName is the unique identifier for this schedule source.
const SourceName = "aviation_edge"

// flightsFuturePath is the future-schedules endpoint path.
const flightsFuturePath = "/v2/public/flightsFuture"

// MinDaysAhead is the upstream scheduling constraint: future schedules are
// only served for dates at least this many days out.
const MinDaysAhead = 8

// Config holds the upstream client settings.
type Config struct {
	// BaseURL is the API root (e.g. "https://aviation-edge.com")
	BaseURL string

	// APIKey authenticates every request
	APIKey string

	// Timeout is the per-request HTTP timeout
	Timeout time.Duration

	// MaxRetries bounds the attempts for one fetch (including the first)
	MaxRetries int
}

// Adapter fetches raw schedule batches over HTTP with bounded retry.
type Adapter struct {
	cfg      Config
	client   *http.Client
	clock    timeutil.Clock
	retryCfg retry.Config
	log      *logger.Logger
}

// NewAdapter creates an Adapter. A nil clock falls back to the system clock;
// a nil logger disables logging.
func NewAdapter(cfg Config, clock timeutil.Clock, log *logger.Logger) *Adapter {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	retryCfg := retry.SourceConfig.WithRetryIf(retry.SkipPermanent)
	if cfg.MaxRetries > 0 {
		retryCfg = retryCfg.WithMaxAttempts(cfg.MaxRetries)
	}

	return &Adapter{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		clock:    clock,
		retryCfg: retryCfg,
		log:      log,
	}
}

// Name returns the source identifier.
func (a *Adapter) Name() string {
	return SourceName
}

// FetchSchedules implements domain.ScheduleSource. HTTP 404 and explicit
// "no record found" responses are valid empty results; transient failures
// are retried with backoff and surface as a retryable SourceError once
// exhausted.
func (a *Adapter) FetchSchedules(ctx context.Context, query domain.ScheduleQuery) ([]domain.RawFlight, error) {
	if err := a.validateQuery(query); err != nil {
		return nil, domain.NewSourceError(query.AirportCode, err)
	}

	flights, err := retry.DoWithResult(ctx, func() ([]domain.RawFlight, error) {
		return a.fetchOnce(ctx, query)
	}, a.retryCfg)
	if err != nil {
		if retry.IsPermanent(err) {
			return nil, domain.NewSourceError(query.AirportCode, err)
		}
		return nil, domain.NewRetryableSourceError(query.AirportCode, err)
	}

	a.log.Debug().
		Str("airport", query.AirportCode).
		Str("direction", query.Direction.String()).
		Str("date", query.Date).
		Int("flights", len(flights)).
		Msg("Schedule batch fetched")

	return flights, nil
}

// validateQuery enforces the query shape and the 8-day rule before any
// network traffic.
func (a *Adapter) validateQuery(query domain.ScheduleQuery) error {
	if strings.TrimSpace(query.AirportCode) == "" {
		return fmt.Errorf("airport code is required")
	}
	if !query.Direction.IsValid() {
		return fmt.Errorf("unknown direction %q", query.Direction)
	}

	target, err := time.Parse("2006-01-02", query.Date)
	if err != nil {
		return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", domain.ErrInvalidTargetDate, query.Date)
	}

	today := a.clock.Now().Truncate(24 * time.Hour)
	earliest := today.AddDate(0, 0, MinDaysAhead)
	if target.Before(earliest) {
		return fmt.Errorf("%w: %s is less than %d days ahead", domain.ErrInvalidTargetDate, query.Date, MinDaysAhead)
	}
	return nil
}

// fetchOnce performs a single HTTP attempt. Non-retryable failures are
// wrapped with retry.NewPermanent so the policy stops early.
func (a *Adapter) fetchOnce(ctx context.Context, query domain.ScheduleQuery) ([]domain.RawFlight, error) {
	params := url.Values{}
	params.Set("key", a.cfg.APIKey)
	params.Set("iataCode", strings.ToUpper(query.AirportCode))
	params.Set("type", strings.ToLower(query.Direction.String()))
	params.Set("date", query.Date)

	endpoint := strings.TrimRight(a.cfg.BaseURL, "/") + flightsFuturePath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.NewPermanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decoding.
	case resp.StatusCode == http.StatusNotFound:
		// No schedule published for this airport/date.
		return []domain.RawFlight{}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, retry.NewPermanent(fmt.Errorf("upstream rejected request: status %d", resp.StatusCode))
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var flights []domain.RawFlight
	if err := json.Unmarshal(body, &flights); err == nil {
		return flights, nil
	}

	// The API answers some empty schedules with an error object instead of
	// a list.
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		a.log.Debug().
			Str("airport", query.AirportCode).
			Str("api_error", apiErr.Error).
			Msg("Upstream returned error object, treating as empty schedule")
		return []domain.RawFlight{}, nil
	}

	return nil, retry.NewPermanent(fmt.Errorf("undecodable response body"))
}

// Ensure Adapter implements the source boundary at compile time.
var _ domain.ScheduleSource = (*Adapter)(nil)
