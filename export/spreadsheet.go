package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/etnz/gplocal"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the length sheet names are truncated to.
const maxSheetName = 28

// SpreadsheetHeader is the first row of every sheet.
var SpreadsheetHeader = []any{"Type", "Date", "Nom", "Poids(kg)", "Prix/kg", "Montant", "Type coût", "Montant coût", "Description"}

// Spreadsheet writes doc as an xlsx workbook with one sheet per ledger.
func Spreadsheet(w io.Writer, doc gplocal.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	names := sheetNames(doc.LedgerIDs())
	if len(names) == 0 {
		// a workbook needs a sheet, keep the default one with just the header.
		if err := f.SetSheetRow(first, "A1", &SpreadsheetHeader); err != nil {
			return err
		}
		_, err := f.WriteTo(w)
		return err
	}

	for i, pid := range doc.LedgerIDs() {
		sheet := names[i]
		if i == 0 {
			if err := f.SetSheetName(first, sheet); err != nil {
				return fmt.Errorf("sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if err := writeLedger(f, sheet, doc.Ledger(pid)); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)
	_, err := f.WriteTo(w)
	return err
}

func writeLedger(f *excelize.File, sheet string, l gplocal.ProductLedger) error {
	rows := [][]any{SpreadsheetHeader}
	for _, p := range l.Purchases {
		rows = append(rows, transactionRow("Achat", p))
	}
	for _, s := range l.Sales {
		rows = append(rows, transactionRow("Vente", s))
	}
	for _, c := range l.Costs {
		rows = append(rows, []any{"Coût", c.Date, "", "", "", "", c.Type, c.Amount.Value().InexactFloat64(), c.Desc})
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}
	return nil
}

func transactionRow(kind string, tx gplocal.Transaction) []any {
	return []any{
		kind,
		tx.Date,
		tx.Name,
		tx.Weight.Value().InexactFloat64(),
		tx.Price.Value().InexactFloat64(),
		tx.Amount().InexactFloat64(),
		"", "", "",
	}
}

// sheetNames returns a valid and unique sheet name for each ledger id.
func sheetNames(ids []string) []string {
	names := make([]string, len(ids))
	used := make(map[string]bool, len(ids))
	for i, id := range ids {
		base := truncate(sanitizeSheetName(id), maxSheetName)
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s~%d", base, n)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

// sanitizeSheetName replaces the characters excel forbids in sheet names.
func sanitizeSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, s)
	s = strings.Trim(s, "'")
	if s == "" {
		s = "_"
	}
	return s
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
