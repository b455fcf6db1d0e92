package export

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/renderer"
	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ReportMarkdown writes the printable report as markdown.
func ReportMarkdown(w io.Writer, doc gplocal.Document, currency string) error {
	_, err := io.WriteString(w, renderer.ReportMarkdown(renderer.NewReport(doc, currency)))
	return err
}

const htmlHead = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #999; padding: 0.3em 0.6em; }
th { background: #eee; }
</style>
</head>
<body>
`

// ReportHTML writes the printable report as a standalone HTML page.
func ReportHTML(w io.Writer, doc gplocal.Document, currency string) error {
	report := renderer.NewReport(doc, currency)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(renderer.ReportMarkdown(report)), &body); err != nil {
		return fmt.Errorf("cannot convert report to html: %w", err)
	}
	if _, err := fmt.Fprintf(w, htmlHead, html.EscapeString(report.Title)); err != nil {
		return err
	}
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// pdfColumns are the widths in mm of the report table columns.
var pdfColumns = []float64{20, 24, 46, 28, 34, 38}

// ReportPDF writes the printable report as an A4 PDF document.
func ReportPDF(w io.Writer, doc gplocal.Document, currency string) error {
	report := renderer.NewReport(doc, currency)

	pdf := fpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252 encoded.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(report.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, s := range report.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(s.Heading), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range renderer.ReportHeader {
			pdf.CellFormat(pdfColumns[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range s.Rows {
			for i, c := range row {
				align := "L"
				if i >= 3 {
					align = "R"
				}
				pdf.CellFormat(pdfColumns[i], 6, tr(fit(pdf, c, pdfColumns[i])), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("cannot build pdf report: %w", err)
	}
	return pdf.Output(w)
}

// fit shortens s with an ellipsis until it fits in a cell of width mm.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	const margin = 2
	r := []rune(s)
	if pdf.GetStringWidth(s)+margin <= width {
		return s
	}
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...")+margin > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
