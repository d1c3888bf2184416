package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/services/registry"
	"github.com/gorilla/mux"
)

// NetworkHandler serves the stored access point records.
type NetworkHandler struct {
	Registry *registry.NetworkRegistry
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(reg *registry.NetworkRegistry) *NetworkHandler {
	return &NetworkHandler{Registry: reg}
}

// HandleList returns records filtered by the query parameters.
func (h *NetworkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := domain.NetworkFilter{
		Status: domain.Status(q.Get("status")),
		Search: q.Get("search"),
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}
	if filter.Status != "" && !filter.Status.Valid() {
		http.Error(w, domain.ErrInvalidStatus.Error(), http.StatusBadRequest)
		return
	}

	networks, err := h.Registry.ListNetworks(r.Context(), filter)
	if err != nil {
		log.Printf("List networks failed: %v", err)
		http.Error(w, "Failed to list networks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"count":    len(networks),
		"networks": networks,
	})
}

// HandleUpdateStatus applies a manual status change to one record.
func (h *NetworkHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bssid := mux.Vars(r)["bssid"]

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.Registry.SetStatus(r.Context(), bssid, domain.Status(req.Status))
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		log.Printf("Status update failed for %s: %v", bssid, err)
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"network": record,
	})
}

// HandleStats returns fleet-wide record statistics.
func (h *NetworkHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.Registry.FleetStats(r.Context())
	if err != nil {
		log.Printf("Stats failed: %v", err)
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
