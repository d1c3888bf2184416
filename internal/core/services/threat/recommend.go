package threat

import "github.com/apsentry/apsentry/internal/core/domain"

// generalRecommendations maps each risk level to its response template.
var generalRecommendations = map[domain.RiskLevel]string{
	domain.RiskCritical: "Do not connect. Isolate and investigate this access point immediately.",
	domain.RiskHigh:     "Avoid connecting. Verify the network's legitimacy with its operator before use.",
	domain.RiskMedium:   "Use caution. Prefer a VPN and avoid transmitting sensitive data on this network.",
	domain.RiskLow:      "No immediate action required. Continue routine monitoring.",
}

// findingTips maps finding types to one specific mitigation tip. Types
// without an entry contribute no tip.
var findingTips = map[string]string{
	domain.FindingEvilTwin:       "Compare the BSSID against the legitimate access point's hardware address before trusting this network.",
	domain.FindingOpenNetwork:    "Enable WPA2 or WPA3 encryption, or treat every session on this network as publicly visible.",
	domain.FindingSuspiciousSSID: "Deceptively named networks are a common phishing lure; confirm the name with venue staff.",
	domain.FindingSignalAnomaly:  "Unstable signal can indicate a mobile rogue transmitter; note where and when the readings change.",
}

const fallbackTip = "Monitor this access point for changes in behavior."

// buildRecommendation assembles the general template for the risk level
// plus the specific tips for the triggered finding types.
func buildRecommendation(level domain.RiskLevel, findings []domain.ThreatFinding) domain.Recommendation {
	rec := domain.Recommendation{General: generalRecommendations[level]}
	for _, f := range findings {
		if tip, ok := findingTips[f.Type]; ok {
			rec.Specific = append(rec.Specific, tip)
		}
	}
	if len(rec.Specific) == 0 {
		rec.Specific = []string{fallbackTip}
	}
	return rec
}
