// Package metrics provides Prometheus metrics for bulk uploads.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal tracks finished uploads by kind and status
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carmate",
			Subsystem: "ingest",
			Name:      "uploads_total",
			Help:      "Total number of bulk uploads by kind and status",
		},
		[]string{"kind", "status"},
	)

	// UploadFailuresTotal tracks failed uploads by error kind
	UploadFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carmate",
			Subsystem: "ingest",
			Name:      "upload_failures_total",
			Help:      "Total number of failed uploads by kind and error kind",
		},
		[]string{"kind", "reason"},
	)

	// UploadDuration tracks pipeline run duration in seconds
	UploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carmate",
			Subsystem: "ingest",
			Name:      "upload_duration_seconds",
			Help:      "Duration of bulk upload pipeline runs in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	// RowsPersistedTotal tracks rows written to the database
	RowsPersistedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carmate",
			Subsystem: "ingest",
			Name:      "rows_persisted_total",
			Help:      "Total number of rows persisted by bulk uploads",
		},
		[]string{"kind"},
	)

	// BatchesCommittedTotal tracks committed batch transactions
	BatchesCommittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carmate",
			Subsystem: "ingest",
			Name:      "batches_committed_total",
			Help:      "Total number of committed write batches",
		},
		[]string{"kind"},
	)

	// UploadsInFlight tracks uploads currently being processed
	UploadsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "carmate",
			Subsystem: "ingest",
			Name:      "uploads_in_flight",
			Help:      "Number of uploads currently being processed",
		},
	)

	// ArchiveFailuresTotal tracks raw file archive failures
	ArchiveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carmate",
			Subsystem: "storage",
			Name:      "archive_failures_total",
			Help:      "Total number of uploads whose raw file could not be archived",
		},
	)

	// HTTPRequestsTotal tracks inbound API requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carmate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of API requests by route and status code",
		},
		[]string{"method", "route", "status_code"},
	)
)
