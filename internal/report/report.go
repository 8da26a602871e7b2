// Package report assembles the monthly ledger snapshot into a portable
// document model. Serialization into an actual file (Word-compatible
// HTML download, Sheets rows) is left to the callers.
package report

import (
	"fmt"

	"cashflowin/internal/core"
)

// Title is the report heading shown in the exported document.
const Title = "Laporan Keuangan by CashFlowin"

// Columns of the report table, in display order.
var Columns = []string{
	"No", "Tanggal", "Pemasukan", "Ket. Pemasukan",
	"Pengeluaran", "Ket. Pengeluaran", "Jumlah",
}

type (
	// Document is the structured monthly report: a title block, an
	// opening-balance row, a header row, one row per period entry and a
	// closing-balance row, in that display order.
	Document struct {
		Title       string
		PeriodLabel string
		Columns     []string
		Opening     SummaryRow
		Rows        []Row
		Closing     SummaryRow
	}

	// Row is one formatted ledger entry. Seq is the 1-based position in
	// display order. Zero amounts and empty notes render as a dash.
	Row struct {
		Seq         int
		Date        string
		Income      string
		IncomeNote  string
		Expense     string
		ExpenseNote string
		Net         string
	}

	// SummaryRow is a balance line spanning the descriptive columns and
	// paired with a single formatted amount.
	SummaryRow struct {
		Label  string
		Amount string
	}
)

// Build produces the document model for one snapshot. It only formats:
// the numbers come from the snapshot unchanged.
func Build(snap core.LedgerSnapshot, loc Locale) Document {
	doc := Document{
		Title:       Title,
		PeriodLabel: loc.PeriodLabel(snap.Period),
		Columns:     Columns,
		Opening:     SummaryRow{Label: "Saldo Awal", Amount: loc.FormatMoney(snap.OpeningBalance)},
		Closing:     SummaryRow{Label: "Saldo Akhir", Amount: loc.FormatMoney(snap.ClosingBalance)},
	}

	for i, e := range snap.PeriodEntries {
		doc.Rows = append(doc.Rows, Row{
			Seq:         i + 1,
			Date:        loc.FormatDate(e.Date),
			Income:      amountOrDash(e.Income, loc),
			IncomeNote:  noteOrDash(e.IncomeNote),
			Expense:     amountOrDash(e.Expense, loc),
			ExpenseNote: noteOrDash(e.ExpenseNote),
			Net:         amountOrDash(e.Net, loc),
		})
	}

	return doc
}

// Filename returns the download name for a period's report, without
// extension suffix applied by the serializer.
func Filename(p core.Period, ext string) string {
	return fmt.Sprintf("ledger_report_%d_%d.%s", int(p.Month), p.Year, ext)
}

func amountOrDash(m core.Money, loc Locale) string {
	if m == 0 {
		return "-"
	}
	return loc.FormatMoney(m)
}

func noteOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
