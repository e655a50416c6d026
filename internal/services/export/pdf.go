package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/indago/internal/models"
)

// pdfColumn is one column of the printable lead sheet. The PDF keeps a
// readable subset of the export columns; CSV and XLSX carry everything.
type pdfColumn struct {
	header string
	width  float64
	value  func(p *models.CandidateProfile) string
}

var pdfColumns = []pdfColumn{
	{"Name", 40, func(p *models.CandidateProfile) string { return p.FullName }},
	{"Title", 55, func(p *models.CandidateProfile) string { return p.JobTitle }},
	{"Company", 45, func(p *models.CandidateProfile) string { return p.CompanyName }},
	{"Location", 45, func(p *models.CandidateProfile) string { return p.Location }},
	{"Seniority", 30, func(p *models.CandidateProfile) string { return p.SeniorityLevel }},
	{"DM", 12, func(p *models.CandidateProfile) string {
		if p.DecisionMaker {
			return "Yes"
		}
		return "No"
	}},
	{"Score", 14, func(p *models.CandidateProfile) string {
		return fmt.Sprintf("%.1f", p.EngagementScore)
	}},
	{"Email", 36, func(p *models.CandidateProfile) string { return p.Email }},
}

func writePDF(job *models.LeadJob) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "LinkedIn Leads", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Query: %s", truncateToWidth(pdf, job.OriginalQuery, 250)), "", 1, "L", false, 0, "")
	completed := ""
	if job.CompletedAt != nil {
		completed = job.CompletedAt.Format("2006-01-02 15:04")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Profiles: %d    Completed: %s", len(job.Profiles), completed), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	writePDFHeader(pdf)

	for i := range job.Profiles {
		// 210mm page height minus bottom margin and row height
		if pdf.GetY() > 192 {
			pdf.AddPage()
			writePDFHeader(pdf)
		}
		p := &job.Profiles[i]
		pdf.SetFont("Arial", "", 8)
		for _, col := range pdfColumns {
			text := truncateToWidth(pdf, col.value(p), col.width-2)
			pdf.CellFormat(col.width, 6, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, col.header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFillColor(255, 255, 255)
}

// truncateToWidth shortens text until it fits the given cell width
func truncateToWidth(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 3 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}
