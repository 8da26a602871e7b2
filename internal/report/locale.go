package report

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"cashflowin/internal/core"
)

// Locale carries the presentation conventions used by the report and the
// on-screen ledger: currency formatting and date labels. Formatting never
// alters the underlying numeric values.
type Locale struct {
	// Currency is an ISO 4217 code understood by go-money.
	Currency string
	// Months are month names indexed by time.Month (index 0 unused).
	Months [13]string
	// Weekdays are day names indexed by time.Weekday (Sunday first).
	Weekdays [7]string
}

// Indonesian is the id-ID locale the ledger ships with.
var Indonesian = Locale{
	Currency: "IDR",
	Months: [13]string{"",
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	},
	Weekdays: [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"},
}

// FormatMoney renders an amount with the locale currency symbol and
// grouping separators, e.g. "Rp500.000".
func (l Locale) FormatMoney(m core.Money) string {
	cur := *money.New(0, l.Currency).Currency()
	minor := decimal.NewFromInt(int64(m)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatDate renders a full date label: weekday, day, month name and
// year, e.g. "Senin, 20 Januari 2025". Absent dates render empty.
func (l Locale) FormatDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return l.Weekdays[int(d.Weekday())] + ", " +
		strconv.Itoa(d.Day()) + " " +
		l.Months[int(d.Month())] + " " +
		strconv.Itoa(d.Year())
}

// PeriodLabel renders a human-readable period, e.g. "Januari 2025".
func (l Locale) PeriodLabel(p core.Period) string {
	return l.Months[int(p.Month)] + " " + strconv.Itoa(p.Year)
}
