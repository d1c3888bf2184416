package threat

import (
	"fmt"
	"strings"

	"github.com/apsentry/apsentry/internal/core/domain"
)

// Detector is one independent threat heuristic. Detectors are pure: they
// hold no state and only inspect the target record and the snapshot of all
// records passed to them.
type Detector interface {
	Type() string
	Detect(target *domain.AccessPointRecord, all []domain.AccessPointRecord) *domain.ThreatFinding
}

// SuspiciousSSIDDetector flags network names that match known deceptive
// patterns (free wifi lures, generic hotspot names).
type SuspiciousSSIDDetector struct{}

func (d *SuspiciousSSIDDetector) Type() string { return domain.FindingSuspiciousSSID }

func (d *SuspiciousSSIDDetector) Detect(target *domain.AccessPointRecord, _ []domain.AccessPointRecord) *domain.ThreatFinding {
	if target.SSID == "" || target.SSID == domain.HiddenSSID {
		return nil
	}
	for _, pattern := range suspiciousSSIDPatterns {
		if pattern.MatchString(target.SSID) {
			return &domain.ThreatFinding{
				Type:        domain.FindingSuspiciousSSID,
				Severity:    domain.SeverityMedium,
				Description: "SSID matches a known deceptive naming pattern",
				Details:     fmt.Sprintf("ssid %q matched pattern %s", target.SSID, pattern.String()),
			}
		}
	}
	return nil
}

// EvilTwinDetector flags access points that duplicate another network's
// SSID under a different BSSID while advertising weaker security.
type EvilTwinDetector struct{}

func (d *EvilTwinDetector) Type() string { return domain.FindingEvilTwin }

func (d *EvilTwinDetector) Detect(target *domain.AccessPointRecord, all []domain.AccessPointRecord) *domain.ThreatFinding {
	targetRank := target.Encryption.StrengthRank()
	var siblings []string
	weaker := target.Encryption == domain.EncryptionOpen

	for i := range all {
		other := &all[i]
		if other.BSSID == target.BSSID || other.SSID != target.SSID {
			continue
		}
		siblings = append(siblings, other.BSSID)
		if other.Encryption.StrengthRank() > targetRank {
			weaker = true
		}
	}

	if len(siblings) == 0 || !weaker {
		return nil
	}
	return &domain.ThreatFinding{
		Type:        domain.FindingEvilTwin,
		Severity:    domain.SeverityHigh,
		Description: "SSID duplicated by another access point with stronger security",
		Details:     fmt.Sprintf("ssid %q also broadcast by %s", target.SSID, strings.Join(siblings, ", ")),
	}
}

// OpenNetworkDetector flags unencrypted access points.
type OpenNetworkDetector struct{}

func (d *OpenNetworkDetector) Type() string { return domain.FindingOpenNetwork }

func (d *OpenNetworkDetector) Detect(target *domain.AccessPointRecord, _ []domain.AccessPointRecord) *domain.ThreatFinding {
	if target.Encryption != domain.EncryptionOpen {
		return nil
	}
	return &domain.ThreatFinding{
		Type:        domain.FindingOpenNetwork,
		Severity:    domain.SeverityMedium,
		Description: "Network has no encryption",
		Details:     "all traffic on this network is visible to nearby receivers",
	}
}

// SignalAnomalyDetector flags unstable signal strength over the recent
// history window, or unusually persistent observation counts. Only one of
// the two sub-conditions reports per evaluation; variation takes priority.
type SignalAnomalyDetector struct{}

func (d *SignalAnomalyDetector) Type() string { return domain.FindingSignalAnomaly }

func (d *SignalAnomalyDetector) Detect(target *domain.AccessPointRecord, _ []domain.AccessPointRecord) *domain.ThreatFinding {
	if len(target.History) < anomalyMinHistory {
		return nil
	}

	recent := target.RecentSamples(anomalyWindow)
	minRSSI, maxRSSI := recent[0].RSSI, recent[0].RSSI
	for _, s := range recent[1:] {
		if s.RSSI < minRSSI {
			minRSSI = s.RSSI
		}
		if s.RSSI > maxRSSI {
			maxRSSI = s.RSSI
		}
	}

	if spread := maxRSSI - minRSSI; spread > anomalyRSSISpread {
		return &domain.ThreatFinding{
			Type:        domain.FindingSignalAnomaly,
			Severity:    domain.SeverityMedium,
			Description: "Signal strength varies abnormally across recent observations",
			Details:     fmt.Sprintf("rssi spread of %d dBm over last %d samples", spread, len(recent)),
		}
	}

	if target.ObservationCount > anomalyObsCeiling {
		return &domain.ThreatFinding{
			Type:        domain.FindingSignalAnomaly,
			Severity:    domain.SeverityMedium,
			Description: "Access point observed unusually persistently",
			Details:     fmt.Sprintf("%d observations recorded", target.ObservationCount),
		}
	}
	return nil
}

// ChannelCongestionDetector flags channels shared by an unusually large
// number of observed access points.
type ChannelCongestionDetector struct{}

func (d *ChannelCongestionDetector) Type() string { return domain.FindingChannelCongestion }

func (d *ChannelCongestionDetector) Detect(target *domain.AccessPointRecord, all []domain.AccessPointRecord) *domain.ThreatFinding {
	count := 0
	for i := range all {
		if all[i].Channel == target.Channel {
			count++
		}
	}
	if count <= congestionThreshold {
		return nil
	}
	return &domain.ThreatFinding{
		Type:        domain.FindingChannelCongestion,
		Severity:    domain.SeverityLow,
		Description: "Channel is heavily congested",
		Details:     fmt.Sprintf("%d access points observed on channel %d", count, target.Channel),
	}
}

// SuspiciousMACDetector flags BSSIDs under placeholder or locally
// administered vendor prefixes.
type SuspiciousMACDetector struct{}

func (d *SuspiciousMACDetector) Type() string { return domain.FindingSuspiciousMAC }

func (d *SuspiciousMACDetector) Detect(target *domain.AccessPointRecord, _ []domain.AccessPointRecord) *domain.ThreatFinding {
	bssid := domain.NormalizeBSSID(target.BSSID)
	if len(bssid) < 8 {
		return nil
	}
	prefix := bssid[:8]
	if _, ok := placeholderOUIPrefixes[prefix]; !ok {
		return nil
	}
	return &domain.ThreatFinding{
		Type:        domain.FindingSuspiciousMAC,
		Severity:    domain.SeverityLow,
		Description: "BSSID uses a placeholder vendor prefix",
		Details:     fmt.Sprintf("prefix %s is not assigned to real hardware", prefix),
	}
}
