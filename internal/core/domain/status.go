package domain

// Status is the operator-facing trust classification of an access point.
type Status string

const (
	StatusUnknown    Status = "unknown"
	StatusTrusted    Status = "trusted"
	StatusSuspicious Status = "suspicious"
)

// ValidStatuses lists the accepted values for manual status changes.
var ValidStatuses = []Status{StatusTrusted, StatusUnknown, StatusSuspicious}

// Valid reports whether s is one of the accepted status values.
func (s Status) Valid() bool {
	switch s {
	case StatusUnknown, StatusTrusted, StatusSuspicious:
		return true
	}
	return false
}

// ApplyManual returns the status resulting from an operator-requested
// change. Operator changes are always permitted for valid targets.
func ApplyManual(current, requested Status) (Status, bool) {
	if !requested.Valid() {
		return current, false
	}
	return requested, true
}

// ApplyAutoEscalation returns the status resulting from an automatic
// harmful-assessment trigger. The only automatic transition is
// unknown -> suspicious; a status set by an operator is never overridden.
func ApplyAutoEscalation(current Status, harmful bool) (Status, bool) {
	if harmful && current == StatusUnknown {
		return StatusSuspicious, true
	}
	return current, false
}
