package ports

import "github.com/apsentry/apsentry/internal/core/domain"

// AlertSink receives threat alerts raised during intake for live delivery.
type AlertSink interface {
	BroadcastThreat(alert domain.ThreatAlert)
}
