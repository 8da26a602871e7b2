package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MaxEntryAmount is the largest income or expense accepted for a single
// entry, in whole rupiah.
const MaxEntryAmount Money = 20_000_000

type (
	// Money is a monetary amount in whole rupiah. Entry amounts are always
	// non-negative; Net values may be negative.
	Money int64

	// Date is a calendar date. The zero value means "not yet dated": the
	// entry exists but does not belong to any period.
	Date struct {
		time.Time
	}

	// LedgerEntry is one recorded income or expense event. Entries are
	// immutable once written; there is no update or delete.
	LedgerEntry struct {
		ID          string
		Date        Date
		Income      Money
		IncomeNote  string
		Expense     Money
		ExpenseNote string
		// Net is Income - Expense, computed at creation and never
		// recomputed afterwards.
		Net Money
		// CreatedAt is assigned by the store on insert and is the durable
		// ordering key. Date is user-editable and may not be monotonic.
		CreatedAt time.Time
	}

	// EntryInput is a candidate entry as submitted by the form, before
	// validation assigns Net and defaults the date.
	EntryInput struct {
		Date        Date
		Income      Money
		IncomeNote  string
		Expense     Money
		ExpenseNote string
	}

	// Period is a (year, month) pair selected by the viewer. It is a query
	// parameter, never persisted.
	Period struct {
		Year  int
		Month time.Month
	}
)

var (
	ErrAmountExceedsLimit = errors.New("amount exceeds the 20,000,000 limit")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidPeriod      = errors.New("invalid period")
)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// IsEmpty reports whether the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String formats the date as YYYY-MM-DD, or empty when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// ParseMoney converts a user-supplied amount string into whole rupiah.
// Fractional rupiah and negative values are rejected; the empty string
// is zero.
func ParseMoney(s string) (Money, error) {
	if s == "" {
		return 0, nil
	}
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if dec.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if !dec.IsInteger() {
		return 0, ErrInvalidAmount
	}
	// IntPart truncates to the low 64 bits, so guard against amounts
	// beyond int64 before converting.
	if !dec.BigInt().IsInt64() {
		return 0, ErrAmountExceedsLimit
	}
	return Money(dec.IntPart()), nil
}

// NewPeriod builds a Period, rejecting months outside 1..12.
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// CurrentPeriod returns the period containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: now.Month()}
}

// Start returns the first instant of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether d falls inside the period. Absent dates are
// never contained.
func (p Period) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	return d.Year() == p.Year && d.Month() == p.Month
}

// IsBefore reports whether d falls in a calendar month strictly before
// the period. Absent dates belong to no period and are never before.
func (p Period) IsBefore(d Date) bool {
	if d.IsZero() {
		return false
	}
	if d.Year() != p.Year {
		return d.Year() < p.Year
	}
	return d.Month() < p.Month
}
