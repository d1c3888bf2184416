package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/apsentry/apsentry/internal/core/services/query"
)

// ThreatHandler serves on-demand threat reports.
type ThreatHandler struct {
	Query *query.Service
}

// NewThreatHandler creates a new ThreatHandler.
func NewThreatHandler(q *query.Service) *ThreatHandler {
	return &ThreatHandler{Query: q}
}

// HandleGetThreats recomputes assessments for every stored record and
// returns the ranked report.
func (h *ThreatHandler) HandleGetThreats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.Query.BuildThreatReport(r.Context())
	if err != nil {
		log.Printf("Threat report failed: %v", err)
		http.Error(w, "Failed to build threat report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"summary":      report.Summary,
		"threats":      report.Threats,
		"generated_at": report.GeneratedAt,
	})
}
