package core

import (
	"sort"
	"time"
)

// LedgerSnapshot is the derived view of the ledger for one period. It is
// recomputed on every query and discarded after use.
type LedgerSnapshot struct {
	Period Period
	// OpeningBalance is the sum of Net over all entries dated strictly
	// before the period.
	OpeningBalance Money
	// PeriodEntries are the entries dated within the period, ordered by
	// CreatedAt ascending (insertion order, not by user-edited date).
	PeriodEntries []LedgerEntry
	// ClosingBalance is OpeningBalance plus the period's net movement.
	ClosingBalance Money
}

// ComputeSnapshot derives the opening balance, period entries and closing
// balance for the given period from the full entry set. It is a pure
// function: no side effects, deterministic for identical inputs.
//
// Entries without a date contribute nothing: they are excluded from the
// period and from the opening-balance sum. Entries after the period are
// ignored.
func ComputeSnapshot(entries []LedgerEntry, p Period) LedgerSnapshot {
	snap := LedgerSnapshot{Period: p}

	for _, e := range entries {
		switch {
		case p.IsBefore(e.Date):
			snap.OpeningBalance += e.Net
		case p.Contains(e.Date):
			snap.PeriodEntries = append(snap.PeriodEntries, e)
		}
	}

	// Callers normally hand us store order already, but the guarantee is
	// ours to keep.
	sort.SliceStable(snap.PeriodEntries, func(i, j int) bool {
		return snap.PeriodEntries[i].CreatedAt.Before(snap.PeriodEntries[j].CreatedAt)
	})

	snap.ClosingBalance = snap.OpeningBalance
	for _, e := range snap.PeriodEntries {
		snap.ClosingBalance += e.Net
	}

	return snap
}

// TotalBalance sums Net over every entry, dated or not. It backs the
// "current balance" figure above the entry form.
func TotalBalance(entries []LedgerEntry) Money {
	var total Money
	for _, e := range entries {
		total += e.Net
	}
	return total
}

// ValidateEntry checks a candidate entry and, on success, returns a
// LedgerEntry ready for insertion with Net computed and the date
// defaulted to now when absent. ID and CreatedAt are left for the store
// to assign.
//
// Both amounts zero, or both non-zero, are accepted: the entry form only
// lets one of the two through, but that exclusivity is a presentation
// convenience, not a data invariant.
func ValidateEntry(in EntryInput, now time.Time) (LedgerEntry, error) {
	if in.Income < 0 || in.Expense < 0 {
		return LedgerEntry{}, ErrNegativeAmount
	}
	if in.Income > MaxEntryAmount || in.Expense > MaxEntryAmount {
		return LedgerEntry{}, ErrAmountExceedsLimit
	}

	date := in.Date
	if date.IsZero() {
		date = Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
	}

	return LedgerEntry{
		Date:        date,
		Income:      in.Income,
		IncomeNote:  in.IncomeNote,
		Expense:     in.Expense,
		ExpenseNote: in.ExpenseNote,
		Net:         in.Income - in.Expense,
	}, nil
}
