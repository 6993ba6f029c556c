package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/fec"
)

// SavePDF renders the record summary into a PDF document. Section order
// matches the text report.
func SavePDF(s Summary, out string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Link Health Report", false)
	pdf.SetAuthor("amberctl", false)
	pdf.SetCreator("amberctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, "amBER Link Health Report")
	addMetaSection(pdf, s)
	addLinkSection(pdf, s)
	addBERSection(pdf, s)
	addHistogramTable(pdf, s.Hist)
	addVerdictSection(pdf, s)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addMetaSection(pdf *gofpdf.Fpdf, s Summary) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", s.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("File %s (row %d)", s.File, s.Row), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func addLinkSection(pdf *gofpdf.Fpdf, s Summary) {
	addSectionHeading(pdf, "Link / Protocol")
	addKVItems(pdf, []kvItem{
		{"Port", s.Port},
		{"MAC Address", s.MAC},
		{"Host Interface", fmt.Sprintf("%s (state=%s)", s.HostIf, s.HostIfState)},
		{"Protocol", s.Protocol},
		{"Speed [Gb/s]", s.Speed},
		{"Active FEC", s.ActiveFEC},
		{"Link Down Count", s.LinkDown},
	})
}

func addBERSection(pdf *gofpdf.Fpdf, s Summary) {
	addSectionHeading(pdf, "BER / FEC")
	addKVItems(pdf, []kvItem{
		{"Raw BER", amber.ScientificString(s.RawBER)},
		{"Effective BER", amber.ScientificString(s.EffBER)},
		{"Raw BER lanes 0-3", strings.Join(s.RawBERLanes[:], ", ")},
		{"Histogram", s.Hist.Summary()},
	})
}

func addHistogramTable(pdf *gofpdf.Fpdf, h fec.Histogram) {
	addSectionHeading(pdf, "FEC Histogram")

	total := h.Total()
	if total == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "All bins are zero (no FEC corrections).", "", "L", false)
		pdf.Ln(2)
		return
	}

	headers := []string{"Bin", "Count", "Exact", "% of Total"}
	widths := []float64{20, 35, 60, 35}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, hd := range headers {
		pdf.CellFormat(widths[i], 7, hd, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, count := range h {
		pct := float64(count) / float64(total) * 100
		values := []string{
			fmt.Sprintf("%d", i),
			fec.FormatCount(count),
			fec.GroupDigits(count),
			fmt.Sprintf("%.2f%%", pct),
		}
		for j, v := range values {
			pdf.CellFormat(widths[j], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func addVerdictSection(pdf *gofpdf.Fpdf, s Summary) {
	addSectionHeading(pdf, "Verdict")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, s.Verdict.Advice(), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, s.Headline(), "", "L", false)
	pdf.Ln(2)

	// QR of the headline digest, for scanning a printed report back into
	// grep-able form.
	if png, err := HeadlineQR(s.Headline(), 256); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("headline-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("headline-qr", pdf.GetX(), pdf.GetY(), 30, 30, false, opts, 0, "")
		pdf.Ln(34)
	}
}

type kvItem struct {
	label string
	value string
}

func addSectionHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func addKVItems(pdf *gofpdf.Fpdf, items []kvItem) {
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.CellFormat(50, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, emptyFallback(item.value, "-"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
