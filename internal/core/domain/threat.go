package domain

import "time"

// RiskLevel is the exclusive classification derived from the harm score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity grades an individual finding.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Finding types emitted by the correlation engine, in evaluation order.
const (
	FindingSuspiciousSSID    = "suspicious_ssid"
	FindingEvilTwin          = "evil_twin"
	FindingOpenNetwork       = "open_network"
	FindingSignalAnomaly     = "signal_anomaly"
	FindingChannelCongestion = "channel_congestion"
	FindingSuspiciousMAC     = "suspicious_mac"
)

// ThreatFinding is one triggered detector result.
type ThreatFinding struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Details     string   `json:"details,omitempty"`
}

// Recommendation pairs a risk-level template with per-finding tips.
type Recommendation struct {
	General  string   `json:"general"`
	Specific []string `json:"specific"`
}

// ThreatAssessment is the derived classification for one access point.
// It is recomputed from a store snapshot on every evaluation and never
// persisted.
type ThreatAssessment struct {
	ID             string          `json:"id"`
	AccessPointID  string          `json:"access_point_id"`
	RiskLevel      RiskLevel       `json:"risk_level"`
	HarmScore      int             `json:"harm_score"`
	Findings       []ThreatFinding `json:"findings"`
	Recommendation Recommendation  `json:"recommendation"`
	IsHarmful      bool            `json:"is_harmful"`
	ComputedAt     time.Time       `json:"computed_at"`
}

// ThreatAlert is the ingest/report projection of a flagged assessment,
// carrying enough identity for immediate alerting.
type ThreatAlert struct {
	SSID           string          `json:"ssid"`
	BSSID          string          `json:"bssid"`
	RiskLevel      RiskLevel       `json:"riskLevel"`
	HarmScore      int             `json:"harmScore"`
	Threats        []ThreatFinding `json:"threats"`
	Recommendation Recommendation  `json:"recommendation"`
	IsHarmful      bool            `json:"isHarmful"`
}

// ThreatSummary aggregates a full-fleet threat report.
type ThreatSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Harmful  int `json:"harmful"`
}

// ThreatReport is the ranked result of a full recomputation over the store.
type ThreatReport struct {
	Summary     ThreatSummary `json:"summary"`
	Threats     []ThreatAlert `json:"threats"`
	GeneratedAt time.Time     `json:"generated_at"`
}
