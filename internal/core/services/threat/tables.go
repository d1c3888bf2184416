package threat

import (
	"regexp"

	"github.com/apsentry/apsentry/internal/core/domain"
)

// Detector weights. Scores are additive across detectors with no ceiling.
const (
	scoreSuspiciousSSID    = 30
	scoreEvilTwin          = 50
	scoreOpenNetwork       = 25
	scoreSignalAnomaly     = 35
	scoreChannelCongestion = 20
	scoreSuspiciousMAC     = 15
)

// Risk classification thresholds, evaluated high to low.
const (
	riskCriticalThreshold = 70
	riskHighThreshold     = 40
	riskMediumThreshold   = 20

	// harmfulThreshold marks assessments that trigger automatic escalation.
	harmfulThreshold = riskHighThreshold
)

// Signal anomaly parameters.
const (
	anomalyMinHistory = 5
	anomalyWindow     = 10
	anomalyRSSISpread = 20
	anomalyObsCeiling = 100
)

// congestionThreshold is the record count per channel above which the
// channel is considered congested.
const congestionThreshold = 15

var findingScores = map[string]int{
	domain.FindingSuspiciousSSID:    scoreSuspiciousSSID,
	domain.FindingEvilTwin:          scoreEvilTwin,
	domain.FindingOpenNetwork:       scoreOpenNetwork,
	domain.FindingSignalAnomaly:     scoreSignalAnomaly,
	domain.FindingChannelCongestion: scoreChannelCongestion,
	domain.FindingSuspiciousMAC:     scoreSuspiciousMAC,
}

// suspiciousSSIDPatterns flags deceptive names commonly used to lure
// clients onto rogue access points.
var suspiciousSSIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)free[\s_-]*wi-?fi`),
	regexp.MustCompile(`(?i)public[\s_-]*wi-?fi`),
	regexp.MustCompile(`(?i)guest[\s_-]*network`),
	regexp.MustCompile(`(?i)hotspot`),
	regexp.MustCompile(`(?i)android[\s_-]*ap`),
	regexp.MustCompile(`(?i)\biphone\b`),
	regexp.MustCompile(`(?i)^default$`),
}

// placeholderOUIPrefixes lists vendor prefixes that indicate a locally
// administered or software-generated MAC rather than real hardware.
var placeholderOUIPrefixes = map[string]struct{}{
	"02:00:00": {},
	"AA:BB:CC": {},
	"00:11:22": {},
	"12:34:56": {},
}

// classifyRisk maps a harm score to the exclusive risk level.
func classifyRisk(score int) domain.RiskLevel {
	switch {
	case score >= riskCriticalThreshold:
		return domain.RiskCritical
	case score >= riskHighThreshold:
		return domain.RiskHigh
	case score >= riskMediumThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
