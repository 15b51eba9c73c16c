// Package metrics exposes prometheus instrumentation for the collection
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the service.
type Metrics struct {
	// RecordsIngested counts normalized records by merge outcome
	// (inserted, extended, unchanged, skipped, failed).
	RecordsIngested *prometheus.CounterVec

	// SourceRequests counts upstream fetches by result (ok, empty, error).
	SourceRequests *prometheus.CounterVec

	// IngestDuration observes how long one batch ingest takes.
	IngestDuration prometheus.Histogram
}

// New creates and registers the service metrics with reg. Pass a dedicated
// registry in tests to avoid duplicate registration.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_ingested_total",
			Help:      "Flight records processed by the ingestion pipeline, by outcome",
		}, []string{"outcome"}),
		SourceRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Upstream schedule API fetches, by result",
		}, []string{"result"}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time taken to ingest one raw schedule batch",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// NewNop creates metrics bound to a throwaway registry, for tests and for
// callers that do not serve /metrics.
func NewNop() *Metrics {
	return New("schedule_collector", prometheus.NewRegistry())
}
