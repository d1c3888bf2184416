package domain

// ObservationReport is one sensor reading of one access point.
type ObservationReport struct {
	SSID       string `json:"ssid,omitempty"`
	BSSID      string `json:"bssid"`
	RSSI       int    `json:"rssi"`
	Channel    int    `json:"channel"`
	Encryption string `json:"encType,omitempty"`
}

// BatchResult accumulates the outcome of processing one ingest batch.
type BatchResult struct {
	BatchID   string        `json:"batch_id"`
	Processed int           `json:"processed"`
	Created   int           `json:"created"`
	Updated   int           `json:"updated"`
	Errors    []string      `json:"errors"`
	Threats   []ThreatAlert `json:"threats"`
}

// SecuritySummary condenses a batch's threat output for the ingest response.
type SecuritySummary struct {
	ThreatsDetected int `json:"threatsDetected"`
	CriticalThreats int `json:"criticalThreats"`
	HighThreats     int `json:"highThreats"`
	HarmfulNetworks int `json:"harmfulNetworks"`
}

// Summarize derives the ingest security summary from the batch threats.
func (r BatchResult) Summarize() SecuritySummary {
	s := SecuritySummary{ThreatsDetected: len(r.Threats)}
	for _, t := range r.Threats {
		switch t.RiskLevel {
		case RiskCritical:
			s.CriticalThreats++
		case RiskHigh:
			s.HighThreats++
		}
		if t.IsHarmful {
			s.HarmfulNetworks++
		}
	}
	return s
}

// NetworkFilter selects and orders records for the list endpoint.
type NetworkFilter struct {
	Status Status
	Search string
	Limit  int
	SortBy string
	Order  string
}
