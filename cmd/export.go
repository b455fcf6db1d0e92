package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gplocal/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the document as a backup, a spreadsheet, a report or a QR code" }
func (*exportCmd) Usage() string {
	return `gpl export [-f json|xlsx|md|html|pdf|qr] [-o <file>]

  Writes the whole document in the chosen format:
  - json: a backup that gpl import reads back (default)
  - xlsx: a spreadsheet with one sheet per product
  - md, html, pdf: a printable report with one table per product
  - qr: a PNG QR code holding the JSON backup, for small documents

  The file is named after the format (gplocal-export-<time>.json,
  gplocal-donnees.xlsx, gplocal-resume.pdf, ...) unless -o is given.
  Use -o - to write to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "f", string(export.FormatJSON), "Export format: json, xlsx, md, html, pdf or qr.")
	f.StringVar(&c.output, "o", "", "Output file, - for the standard output. Defaults to a name derived from the format.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := export.ParseFormat(c.format)
	if err != nil {
		return exitStatus("parsing -f", fmt.Errorf("%w: %w", errUsage, err))
	}
	store, doc, status := loadDocument(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	// the document is rendered in memory first, so a failed export leaves no partial file.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, doc, Currency()); err != nil {
		return exitStatus("exporting", err)
	}

	if c.output == "-" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return exitStatus("writing export", err)
		}
		return subcommands.ExitSuccess
	}
	name := c.output
	if name == "" {
		name = export.Filename(format, now())
	}
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return exitStatus("writing export", err)
	}
	fmt.Fprintf(stdout, "Exporté dans %s.\n", name)
	return subcommands.ExitSuccess
}
