package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/services/intake"
)

// IngestHandler accepts observation batches from sensor devices.
type IngestHandler struct {
	Pipeline *intake.Pipeline
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline *intake.Pipeline) *IngestHandler {
	return &IngestHandler{Pipeline: pipeline}
}

type ingestRequest struct {
	DeviceID string          `json:"deviceId"`
	Networks json.RawMessage `json:"networks"`
}

type ingestResponse struct {
	Success         bool                   `json:"success"`
	Message         string                 `json:"message"`
	SecuritySummary domain.SecuritySummary `json:"securitySummary"`
	Processed       int                    `json:"processed"`
	Created         int                    `json:"created"`
	Updated         int                    `json:"updated"`
	Threats         []domain.ThreatAlert   `json:"threats"`
	Errors          []string               `json:"errors"`
}

// HandleIngest processes one observation batch.
func (h *IngestHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.DeviceID == "" {
		http.Error(w, "deviceId is required", http.StatusBadRequest)
		return
	}
	if len(req.Networks) == 0 || bytes.Equal(req.Networks, []byte("null")) {
		http.Error(w, "networks must be a list", http.StatusBadRequest)
		return
	}

	var reports []domain.ObservationReport
	if err := json.Unmarshal(req.Networks, &reports); err != nil {
		http.Error(w, "networks must be a list", http.StatusBadRequest)
		return
	}

	result, err := h.Pipeline.ProcessBatch(r.Context(), req.DeviceID, reports)
	if err != nil {
		log.Printf("Ingest failed for device %s: %v", req.DeviceID, err)
		http.Error(w, "Ingest failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ingestResponse{
		Success:         true,
		Message:         "batch processed",
		SecuritySummary: result.Summarize(),
		Processed:       result.Processed,
		Created:         result.Created,
		Updated:         result.Updated,
		Threats:         result.Threats,
		Errors:          result.Errors,
	})
}
