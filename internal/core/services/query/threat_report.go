package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/ports"
	"github.com/apsentry/apsentry/internal/core/services/threat"
)

// Service recomputes threat assessments for the whole stored fleet on
// demand. Every record is evaluated against the full loaded set, so cost
// is quadratic in the record count; acceptable for the expected fleet
// size, not designed for large deployments without precomputed indexes.
type Service struct {
	store  ports.Storage
	engine *threat.Engine
	now    func() time.Time
}

// NewService creates a threat query service.
func NewService(store ports.Storage, engine *threat.Engine) *Service {
	return &Service{store: store, engine: engine, now: time.Now}
}

// BuildThreatReport loads every record, assesses each against the loaded
// snapshot, keeps entries with a nonzero score or findings and ranks them
// by harm score descending. Ties keep original read order.
func (s *Service) BuildThreatReport(ctx context.Context) (domain.ThreatReport, error) {
	records, err := s.store.GetAllAccessPoints(ctx)
	if err != nil {
		return domain.ThreatReport{}, fmt.Errorf("load record set: %w", err)
	}

	report := domain.ThreatReport{
		Threats:     []domain.ThreatAlert{},
		GeneratedAt: s.now(),
	}

	for _, record := range records {
		assessment := s.engine.Assess(record, records)
		if assessment.HarmScore <= 0 && len(assessment.Findings) == 0 {
			continue
		}

		report.Threats = append(report.Threats, domain.ThreatAlert{
			SSID:           record.SSID,
			BSSID:          record.BSSID,
			RiskLevel:      assessment.RiskLevel,
			HarmScore:      assessment.HarmScore,
			Threats:        assessment.Findings,
			Recommendation: assessment.Recommendation,
			IsHarmful:      assessment.IsHarmful,
		})

		switch assessment.RiskLevel {
		case domain.RiskCritical:
			report.Summary.Critical++
		case domain.RiskHigh:
			report.Summary.High++
		case domain.RiskMedium:
			report.Summary.Medium++
		case domain.RiskLow:
			report.Summary.Low++
		}
		if assessment.IsHarmful {
			report.Summary.Harmful++
		}
	}

	sort.SliceStable(report.Threats, func(i, j int) bool {
		return report.Threats[i].HarmScore > report.Threats[j].HarmScore
	})
	report.Summary.Total = len(report.Threats)

	return report, nil
}
