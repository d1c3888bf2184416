package reporting

import (
	"bytes"
	"fmt"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders threat reports to PDF format.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportThreatReport generates a PDF from a fleet threat report.
func (e *PDFExporter) ExportThreatReport(report *domain.ThreatReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addSummary(pdf, report)
	e.addThreatTable(pdf, report)
	e.addFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *domain.ThreatReport) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 14, "Wireless Threat Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	dateStr := fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (e *PDFExporter) addSummary(pdf *gofpdf.Fpdf, report *domain.ThreatReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	rows := []struct {
		label string
		value int
		color []int
	}{
		{"Flagged Networks", report.Summary.Total, []int{0, 102, 204}},
		{"Critical", report.Summary.Critical, []int{220, 53, 69}},
		{"High", report.Summary.High, []int{255, 149, 0}},
		{"Medium", report.Summary.Medium, []int{255, 204, 0}},
		{"Low", report.Summary.Low, []int{52, 199, 89}},
		{"Harmful", report.Summary.Harmful, []int{220, 53, 69}},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(60, 7, row.label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(row.color[0], row.color[1], row.color[2])
		pdf.CellFormat(0, 7, fmt.Sprintf("%d", row.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addThreatTable(pdf *gofpdf.Fpdf, report *domain.ThreatReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Flagged Access Points", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(50, 8, "SSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "BSSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Risk", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 8, "Score", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 8, "Findings", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, threat := range report.Threats {
		r, g, b := riskColor(threat.RiskLevel)

		ssid := threat.SSID
		if len(ssid) > 28 {
			ssid = ssid[:25] + "..."
		}

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(50, 7, ssid, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, threat.BSSID, "1", 0, "L", false, 0, "")
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(25, 7, string(threat.RiskLevel), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", threat.HarmScore), "1", 0, "C", false, 0, "")
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(50, 7, findingTypes(threat), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 6, "Heuristic classification; findings are advisory and not authoritative.", "", 1, "L", false, 0, "")
}

func riskColor(level domain.RiskLevel) (r, g, b int) {
	switch level {
	case domain.RiskCritical:
		return 220, 53, 69
	case domain.RiskHigh:
		return 255, 149, 0
	case domain.RiskMedium:
		return 255, 204, 0
	default:
		return 52, 199, 89
	}
}

func findingTypes(threat domain.ThreatAlert) string {
	names := ""
	for i, f := range threat.Threats {
		if i > 0 {
			names += ", "
		}
		names += f.Type
	}
	if len(names) > 30 {
		names = names[:27] + "..."
	}
	return names
}
