// Package export writes a gplocal document in the formats it can be shared in:
// a JSON backup, a spreadsheet, a printable report (markdown, HTML or PDF) and
// a QR code image.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/gplocal"
)

// Format is an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatQR       Format = "qr"
)

// Formats lists all export formats.
var Formats = []Format{FormatJSON, FormatXLSX, FormatMarkdown, FormatHTML, FormatPDF, FormatQR}

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// File names of the exports.
const (
	SpreadsheetFilename = "gplocal-donnees.xlsx"
	MarkdownFilename    = "gplocal-resume.md"
	HTMLFilename        = "gplocal-resume.html"
	PDFFilename         = "gplocal-resume.pdf"
	QRFilename          = "gplocal-qr.png"
)

// Filename returns the default file name of an export made at now.
func Filename(f Format, now time.Time) string {
	switch f {
	case FormatJSON:
		return JSONFilename(now)
	case FormatXLSX:
		return SpreadsheetFilename
	case FormatMarkdown:
		return MarkdownFilename
	case FormatHTML:
		return HTMLFilename
	case FormatPDF:
		return PDFFilename
	case FormatQR:
		return QRFilename
	default:
		return ""
	}
}

// Write exports doc to w in format f. Amounts of the report are formatted in currency.
func Write(w io.Writer, f Format, doc gplocal.Document, currency string) error {
	switch f {
	case FormatJSON:
		return JSON(w, doc)
	case FormatXLSX:
		return Spreadsheet(w, doc)
	case FormatMarkdown:
		return ReportMarkdown(w, doc, currency)
	case FormatHTML:
		return ReportHTML(w, doc, currency)
	case FormatPDF:
		return ReportPDF(w, doc, currency)
	case FormatQR:
		return QR(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
