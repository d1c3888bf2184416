package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BatchesIngested counts observation batches accepted for processing
	BatchesIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apsentry",
			Name:      "batches_ingested_total",
			Help:      "Total number of observation batches ingested",
		},
		[]string{"device"},
	)

	// ObservationsProcessed counts individual observation reports processed
	ObservationsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apsentry",
			Name:      "observations_processed_total",
			Help:      "Total number of observation reports processed",
		},
		[]string{"device"},
	)

	// ObservationErrors counts per-item validation failures during intake
	ObservationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apsentry",
			Name:      "observation_errors_total",
			Help:      "Total number of rejected observation reports",
		},
		[]string{"device"},
	)

	// ThreatsDetected counts assessments that produced findings, by risk level
	ThreatsDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apsentry",
			Name:      "threats_detected_total",
			Help:      "Total number of threat assessments with findings",
		},
		[]string{"risk_level"},
	)

	// StatusEscalations counts automatic unknown->suspicious transitions
	StatusEscalations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "apsentry",
			Name:      "status_escalations_total",
			Help:      "Total number of automatic status escalations",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// This function is idempotent and can be called multiple times safely.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(BatchesIngested)
		prometheus.DefaultRegisterer.Register(ObservationsProcessed)
		prometheus.DefaultRegisterer.Register(ObservationErrors)
		prometheus.DefaultRegisterer.Register(ThreatsDetected)
		prometheus.DefaultRegisterer.Register(StatusEscalations)
	})
}
