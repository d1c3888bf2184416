package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/ports"
	"github.com/apsentry/apsentry/internal/core/services/threat"
	"github.com/apsentry/apsentry/internal/telemetry"
	"github.com/google/uuid"
)

// Pipeline consumes observation batches from sensor devices: it upserts
// access point records, runs the correlation engine against the updated
// record set and applies automatic status escalation.
type Pipeline struct {
	store  ports.Storage
	engine *threat.Engine
	alerts ports.AlertSink

	// now is swappable for tests.
	now func() time.Time
}

// NewPipeline creates an intake pipeline. alerts may be nil when no live
// delivery is wired.
func NewPipeline(store ports.Storage, engine *threat.Engine, alerts ports.AlertSink) *Pipeline {
	return &Pipeline{
		store:  store,
		engine: engine,
		alerts: alerts,
		now:    time.Now,
	}
}

// ProcessBatch processes the reports of one device batch in list order.
// A malformed report is recorded as a per-item error and never aborts the
// batch; a store failure is fatal for the whole request. The returned
// result carries per-batch counters and the threats flagged for alerting.
func (p *Pipeline) ProcessBatch(ctx context.Context, deviceID string, reports []domain.ObservationReport) (domain.BatchResult, error) {
	result := domain.BatchResult{
		BatchID: uuid.NewString(),
		Errors:  []string{},
		Threats: []domain.ThreatAlert{},
	}
	telemetry.BatchesIngested.WithLabelValues(deviceID).Inc()

	for i, report := range reports {
		if domain.NormalizeBSSID(report.BSSID) == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("report %d: missing bssid (ssid=%q)", i, report.SSID))
			telemetry.ObservationErrors.WithLabelValues(deviceID).Inc()
			continue
		}

		record, created, err := p.upsert(ctx, deviceID, report)
		if err != nil {
			return result, fmt.Errorf("upsert %s: %w", domain.NormalizeBSSID(report.BSSID), err)
		}

		result.Processed++
		if created {
			result.Created++
		} else {
			result.Updated++
		}
		telemetry.ObservationsProcessed.WithLabelValues(deviceID).Inc()

		if err := p.correlate(ctx, record, &result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// upsert creates or refreshes the record for one report and reports
// whether a new record was created.
func (p *Pipeline) upsert(ctx context.Context, deviceID string, report domain.ObservationReport) (domain.AccessPointRecord, bool, error) {
	bssid := domain.NormalizeBSSID(report.BSSID)
	now := p.now()

	existing, err := p.store.GetAccessPoint(ctx, bssid)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		record := domain.NewAccessPointRecord(report, deviceID, now)
		if err := p.store.SaveAccessPoint(ctx, record); err != nil {
			return domain.AccessPointRecord{}, false, err
		}
		return record, true, nil
	case err != nil:
		return domain.AccessPointRecord{}, false, err
	}

	existing.ApplyObservation(report, deviceID, now)
	if err := p.store.SaveAccessPoint(ctx, *existing); err != nil {
		return domain.AccessPointRecord{}, false, err
	}
	return *existing, false, nil
}

// correlate assesses the record against the current full set and applies
// the automatic escalation immediately after the record's own upsert.
func (p *Pipeline) correlate(ctx context.Context, record domain.AccessPointRecord, result *domain.BatchResult) error {
	all, err := p.store.GetAllAccessPoints(ctx)
	if err != nil {
		return fmt.Errorf("load record set: %w", err)
	}

	assessment := p.engine.Assess(record, all)
	if len(assessment.Findings) == 0 {
		return nil
	}

	telemetry.ThreatsDetected.WithLabelValues(string(assessment.RiskLevel)).Inc()
	alert := domain.ThreatAlert{
		SSID:           record.SSID,
		BSSID:          record.BSSID,
		RiskLevel:      assessment.RiskLevel,
		HarmScore:      assessment.HarmScore,
		Threats:        assessment.Findings,
		Recommendation: assessment.Recommendation,
		IsHarmful:      assessment.IsHarmful,
	}
	result.Threats = append(result.Threats, alert)

	if next, changed := domain.ApplyAutoEscalation(record.Status, assessment.IsHarmful); changed {
		record.Status = next
		if err := p.store.SaveAccessPoint(ctx, record); err != nil {
			return fmt.Errorf("escalate %s: %w", record.BSSID, err)
		}
		telemetry.StatusEscalations.Inc()
		slog.Info("status escalated",
			"bssid", record.BSSID,
			"ssid", record.SSID,
			"harm_score", assessment.HarmScore,
			"risk_level", assessment.RiskLevel)
	}

	if p.alerts != nil && assessment.IsHarmful {
		p.alerts.BroadcastThreat(alert)
	}
	return nil
}
