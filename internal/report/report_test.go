package report

import (
	"strings"
	"testing"
	"time"

	"cashflowin/internal/core"
)

func snapshotFixture() core.LedgerSnapshot {
	created := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)
	return core.LedgerSnapshot{
		Period:         core.Period{Year: 2025, Month: time.January},
		OpeningBalance: 500_000,
		PeriodEntries: []core.LedgerEntry{
			{
				ID:         "a",
				Date:       core.NewDate(2025, time.January, 10),
				Income:     1_000_000,
				IncomeNote: "Gaji bulan ini",
				Net:        1_000_000,
				CreatedAt:  created,
			},
			{
				ID:          "b",
				Date:        core.NewDate(2025, time.January, 20),
				Expense:     300_000,
				ExpenseNote: "Belanja bulanan",
				Net:         -300_000,
				CreatedAt:   created.Add(time.Hour),
			},
		},
		ClosingBalance: 1_200_000,
	}
}

func TestBuild(t *testing.T) {
	doc := Build(snapshotFixture(), Indonesian)

	if doc.Title != "Laporan Keuangan by CashFlowin" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.PeriodLabel != "Januari 2025" {
		t.Errorf("period label = %q, want \"Januari 2025\"", doc.PeriodLabel)
	}
	if len(doc.Columns) != 7 || doc.Columns[0] != "No" || doc.Columns[6] != "Jumlah" {
		t.Errorf("columns = %v", doc.Columns)
	}
	if doc.Opening.Label != "Saldo Awal" {
		t.Errorf("opening label = %q", doc.Opening.Label)
	}
	if doc.Closing.Label != "Saldo Akhir" {
		t.Errorf("closing label = %q", doc.Closing.Label)
	}
	if doc.Opening.Amount != Indonesian.FormatMoney(500_000) {
		t.Errorf("opening amount = %q", doc.Opening.Amount)
	}
	if doc.Closing.Amount != Indonesian.FormatMoney(1_200_000) {
		t.Errorf("closing amount = %q", doc.Closing.Amount)
	}

	if len(doc.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(doc.Rows))
	}
	first, second := doc.Rows[0], doc.Rows[1]
	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("sequence numbers = %d, %d", first.Seq, second.Seq)
	}
	if first.Expense != "-" || first.ExpenseNote != "-" {
		t.Errorf("zero expense should render dashes, got %q / %q", first.Expense, first.ExpenseNote)
	}
	if second.Income != "-" || second.IncomeNote != "-" {
		t.Errorf("zero income should render dashes, got %q / %q", second.Income, second.IncomeNote)
	}
	if first.IncomeNote != "Gaji bulan ini" {
		t.Errorf("income note = %q", first.IncomeNote)
	}
	if second.Net != Indonesian.FormatMoney(-300_000) {
		t.Errorf("net = %q", second.Net)
	}
}

func TestBuild_EmptyPeriod(t *testing.T) {
	snap := core.LedgerSnapshot{
		Period:         core.Period{Year: 2025, Month: time.July},
		OpeningBalance: 42,
		ClosingBalance: 42,
	}

	doc := Build(snap, Indonesian)

	if len(doc.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(doc.Rows))
	}
	if doc.Opening.Amount != doc.Closing.Amount {
		t.Errorf("opening %q != closing %q for empty period", doc.Opening.Amount, doc.Closing.Amount)
	}
}

func TestLocaleFormatDate(t *testing.T) {
	// 2025-01-20 is a Monday.
	got := Indonesian.FormatDate(core.NewDate(2025, time.January, 20))
	if got != "Senin, 20 Januari 2025" {
		t.Errorf("date label = %q, want \"Senin, 20 Januari 2025\"", got)
	}

	if got := Indonesian.FormatDate(core.Date{}); got != "" {
		t.Errorf("absent date label = %q, want empty", got)
	}
}

func TestLocaleFormatMoney(t *testing.T) {
	got := Indonesian.FormatMoney(500_000)
	if got == "" {
		t.Fatal("empty formatted amount")
	}
	if !strings.Contains(got, "Rp") {
		t.Errorf("formatted amount %q missing currency symbol", got)
	}
	// Formatting is presentation-only and stable.
	if again := Indonesian.FormatMoney(500_000); again != got {
		t.Errorf("formatting not deterministic: %q vs %q", got, again)
	}
	if same := Indonesian.FormatMoney(400_000); same == got {
		t.Errorf("distinct values format identically: %q", same)
	}
}

func TestFilename(t *testing.T) {
	p := core.Period{Year: 2025, Month: time.January}
	if got := Filename(p, "doc"); got != "ledger_report_1_2025.doc" {
		t.Errorf("filename = %q", got)
	}
}
