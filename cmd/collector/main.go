// Package main is the entry point for the schedule collection run: it pulls
// future flight schedules from the upstream API for the configured airports
// and dates, and merges them into the local store.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flight-data/flight-schedule-collector/internal/adapter/provider/aviationedge"
	"github.com/flight-data/flight-schedule-collector/internal/adapter/store"
	"github.com/flight-data/flight-schedule-collector/internal/config"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/metrics"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/timeutil"
	"github.com/flight-data/flight-schedule-collector/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("Collection run failed")
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustLoad()

	logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "schedule-collector",
	})
	log := logger.Global

	if len(cfg.Collector.Airports) == 0 {
		return errors.New("no airports configured: set COLLECT_AIRPORTS")
	}
	if cfg.API.Key == "" {
		return errors.New("no API key configured: set API_KEY")
	}

	flightStore, closeStore, err := store.Connect(cfg.Store.Path, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()

	clock := timeutil.NewRealClock()
	m := metrics.New("schedule_collector", prometheus.DefaultRegisterer)

	source := aviationedge.NewAdapter(aviationedge.Config{
		BaseURL:    cfg.API.BaseURL,
		APIKey:     cfg.API.Key,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	}, clock, log)

	ingestor := usecase.NewIngestor(flightStore, clock, m, log)
	collector := usecase.NewCollector(source, ingestor, usecase.CollectorConfig{
		Airports:     cfg.Collector.Airports,
		Direction:    cfg.Collector.Direction,
		DaysAhead:    cfg.Collector.DaysAhead,
		CollectDays:  cfg.Collector.CollectDays,
		RequestDelay: cfg.Collector.RequestDelay,
	}, clock, m, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := collector.Run(ctx)
	if report != nil {
		printSummary(log, report)
	}
	return err
}

// printSummary reports the run totals the way operators read them: how much
// came in, how much was new, and how much the store already knew.
func printSummary(log *logger.Logger, report *usecase.CollectionReport) {
	log.Info().
		Str("run_id", report.RunID).
		Int("batches", len(report.Batches)).
		Int("failed_fetches", report.FailedFetches).
		Int("retrieved", report.Totals.Retrieved).
		Int("inserted", report.Totals.Inserted).
		Int("extended", report.Totals.Extended).
		Int("duplicates", report.Totals.Duplicates).
		Int("skipped", report.Totals.Skipped).
		Int("failed", report.Totals.Failed).
		Msg(fmt.Sprintf("Collection summary: %d stored", report.Totals.Stored()))
}
