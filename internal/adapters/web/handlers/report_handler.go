package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/apsentry/apsentry/internal/adapters/reporting"
	"github.com/apsentry/apsentry/internal/core/services/query"
)

// ReportHandler serves downloadable threat report documents.
type ReportHandler struct {
	Query    *query.Service
	Exporter *reporting.PDFExporter
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(q *query.Service, exporter *reporting.PDFExporter) *ReportHandler {
	return &ReportHandler{Query: q, Exporter: exporter}
}

// HandleDownloadReport builds the current threat report and streams it as
// a PDF attachment.
func (h *ReportHandler) HandleDownloadReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.Query.BuildThreatReport(r.Context())
	if err != nil {
		log.Printf("Report generation failed: %v", err)
		http.Error(w, "Failed to build threat report", http.StatusInternalServerError)
		return
	}

	data, err := h.Exporter.ExportThreatReport(&report)
	if err != nil {
		log.Printf("PDF export failed: %v", err)
		http.Error(w, "Failed to render report", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("threat-report-%s.pdf", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(data)
}
