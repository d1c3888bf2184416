package threat

import (
	"time"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/google/uuid"
)

// Engine correlates one access point against the full observed set using a
// fixed sequence of independent detectors. The engine holds no mutable
// state and performs no I/O; it is safe for concurrent use provided each
// call receives a consistent snapshot of allRecords.
type Engine struct {
	detectors []Detector
}

// NewEngine creates an engine with the default detectors in their fixed
// evaluation order.
func NewEngine() *Engine {
	return &Engine{
		detectors: []Detector{
			&SuspiciousSSIDDetector{},
			&EvilTwinDetector{},
			&OpenNetworkDetector{},
			&SignalAnomalyDetector{},
			&ChannelCongestionDetector{},
			&SuspiciousMACDetector{},
		},
	}
}

// Assess evaluates all detectors against the target record and the given
// snapshot. Findings are ordered by detector evaluation order and their
// weights sum with no deduplication.
func (e *Engine) Assess(target domain.AccessPointRecord, all []domain.AccessPointRecord) domain.ThreatAssessment {
	var findings []domain.ThreatFinding
	score := 0

	for _, detector := range e.detectors {
		if finding := detector.Detect(&target, all); finding != nil {
			findings = append(findings, *finding)
			score += findingScores[finding.Type]
		}
	}

	level := classifyRisk(score)
	return domain.ThreatAssessment{
		ID:             uuid.NewString(),
		AccessPointID:  target.BSSID,
		RiskLevel:      level,
		HarmScore:      score,
		Findings:       findings,
		Recommendation: buildRecommendation(level, findings),
		IsHarmful:      score >= harmfulThreshold,
		ComputedAt:     time.Now(),
	}
}
