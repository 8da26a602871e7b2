package core

import (
	"reflect"
	"testing"
	"time"
)

func entry(id string, date Date, income, expense Money, createdAt time.Time) LedgerEntry {
	return LedgerEntry{
		ID:        id,
		Date:      date,
		Income:    income,
		Expense:   expense,
		Net:       income - expense,
		CreatedAt: createdAt,
	}
}

func TestComputeSnapshot(t *testing.T) {
	base := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	jan := Period{Year: 2025, Month: time.January}

	// Worked example: two January entries plus one December entry.
	entries := []LedgerEntry{
		entry("a", NewDate(2025, time.January, 10), 1_000_000, 0, base),
		entry("b", NewDate(2025, time.January, 20), 0, 300_000, base.Add(time.Hour)),
		entry("c", NewDate(2024, time.December, 31), 500_000, 0, base.Add(2*time.Hour)),
	}

	snap := ComputeSnapshot(entries, jan)

	if snap.OpeningBalance != 500_000 {
		t.Errorf("opening balance = %d, want 500000", snap.OpeningBalance)
	}
	if len(snap.PeriodEntries) != 2 {
		t.Fatalf("period entries = %d, want 2", len(snap.PeriodEntries))
	}
	if snap.PeriodEntries[0].ID != "a" || snap.PeriodEntries[1].ID != "b" {
		t.Errorf("period entries out of insertion order: %s, %s",
			snap.PeriodEntries[0].ID, snap.PeriodEntries[1].ID)
	}
	if snap.ClosingBalance != 1_200_000 {
		t.Errorf("closing balance = %d, want 1200000", snap.ClosingBalance)
	}
}

func TestComputeSnapshot_ClosingEqualsOpeningPlusPeriodNet(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	entries := []LedgerEntry{
		entry("1", NewDate(2024, time.June, 3), 120_000, 0, base),
		entry("2", NewDate(2025, time.February, 14), 0, 45_000, base.Add(1*time.Minute)),
		entry("3", NewDate(2025, time.March, 2), 9_000_000, 0, base.Add(2*time.Minute)),
		entry("4", NewDate(2025, time.March, 30), 0, 2_500_000, base.Add(3*time.Minute)),
		entry("5", NewDate(2025, time.April, 1), 777, 0, base.Add(4*time.Minute)),
		entry("6", Date{}, 999, 0, base.Add(5*time.Minute)), // undated, must not count
	}

	for month := time.January; month <= time.December; month++ {
		p := Period{Year: 2025, Month: month}
		snap := ComputeSnapshot(entries, p)

		var periodNet Money
		for _, e := range snap.PeriodEntries {
			periodNet += e.Net
		}
		if snap.ClosingBalance != snap.OpeningBalance+periodNet {
			t.Errorf("%v: closing %d != opening %d + period net %d",
				p, snap.ClosingBalance, snap.OpeningBalance, periodNet)
		}
	}
}

func TestComputeSnapshot_Pure(t *testing.T) {
	base := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	entries := []LedgerEntry{
		entry("x", NewDate(2025, time.May, 2), 100, 0, base),
		entry("y", NewDate(2025, time.April, 2), 0, 40, base.Add(time.Second)),
	}
	p := Period{Year: 2025, Month: time.May}

	first := ComputeSnapshot(entries, p)
	second := ComputeSnapshot(entries, p)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("snapshots differ across identical calls:\n%#v\n%#v", first, second)
	}
}

func TestComputeSnapshot_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	entries := []LedgerEntry{
		entry("x", NewDate(2025, time.May, 2), 100, 0, base),
		entry("y", NewDate(2025, time.June, 2), 0, 40, base.Add(time.Second)),
	}
	before := make([]LedgerEntry, len(entries))
	copy(before, entries)

	// Changing only the displayed period must never touch the entries.
	ComputeSnapshot(entries, Period{Year: 2025, Month: time.May})
	ComputeSnapshot(entries, Period{Year: 2025, Month: time.June})
	ComputeSnapshot(entries, Period{Year: 2030, Month: time.December})

	if !reflect.DeepEqual(before, entries) {
		t.Errorf("input entries mutated:\nbefore %#v\nafter  %#v", before, entries)
	}
}

func TestComputeSnapshot_EmptyStore(t *testing.T) {
	snap := ComputeSnapshot(nil, Period{Year: 2031, Month: time.July})

	if snap.OpeningBalance != 0 || snap.ClosingBalance != 0 {
		t.Errorf("empty store balances = %d / %d, want 0 / 0",
			snap.OpeningBalance, snap.ClosingBalance)
	}
	if len(snap.PeriodEntries) != 0 {
		t.Errorf("empty store period entries = %d, want 0", len(snap.PeriodEntries))
	}
}

func TestComputeSnapshot_PeriodWithNoEntries(t *testing.T) {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	entries := []LedgerEntry{
		entry("a", NewDate(2025, time.January, 5), 250_000, 0, base),
	}

	snap := ComputeSnapshot(entries, Period{Year: 2025, Month: time.March})

	if len(snap.PeriodEntries) != 0 {
		t.Errorf("period entries = %d, want 0", len(snap.PeriodEntries))
	}
	if snap.OpeningBalance != 250_000 {
		t.Errorf("opening balance = %d, want 250000", snap.OpeningBalance)
	}
	if snap.ClosingBalance != 250_000 {
		t.Errorf("closing balance = %d, want 250000", snap.ClosingBalance)
	}
}

func TestComputeSnapshot_InsertionOrderWinsOverDate(t *testing.T) {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	// Later insert carries an earlier user-supplied date.
	entries := []LedgerEntry{
		entry("first", NewDate(2025, time.January, 25), 10, 0, base),
		entry("second", NewDate(2025, time.January, 2), 20, 0, base.Add(time.Minute)),
	}

	snap := ComputeSnapshot(entries, Period{Year: 2025, Month: time.January})

	if snap.PeriodEntries[0].ID != "first" || snap.PeriodEntries[1].ID != "second" {
		t.Errorf("rows reordered by date: got %s, %s",
			snap.PeriodEntries[0].ID, snap.PeriodEntries[1].ID)
	}
}

func TestValidateEntry(t *testing.T) {
	now := time.Date(2025, time.August, 15, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   EntryInput
		wantErr error
		wantNet Money
	}{
		{
			name:    "income at limit accepted",
			input:   EntryInput{Income: 20_000_000},
			wantNet: 20_000_000,
		},
		{
			name:    "income above limit rejected",
			input:   EntryInput{Income: 20_000_001},
			wantErr: ErrAmountExceedsLimit,
		},
		{
			name:    "expense above limit rejected",
			input:   EntryInput{Expense: 20_000_001},
			wantErr: ErrAmountExceedsLimit,
		},
		{
			name:    "negative income rejected",
			input:   EntryInput{Income: -1},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "net is income minus expense",
			input:   EntryInput{Income: 1_500_000, Expense: 200_000},
			wantNet: 1_300_000,
		},
		{
			name:    "both zero accepted",
			input:   EntryInput{},
			wantNet: 0,
		},
		{
			name:    "expense only gives negative net",
			input:   EntryInput{Expense: 300_000, ExpenseNote: "belanja"},
			wantNet: -300_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEntry(tt.input, now)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Net != tt.wantNet {
				t.Errorf("net = %d, want %d", got.Net, tt.wantNet)
			}
			if got.Net != got.Income-got.Expense {
				t.Errorf("net %d != income %d - expense %d", got.Net, got.Income, got.Expense)
			}
		})
	}
}

func TestValidateEntry_DateDefaultsToToday(t *testing.T) {
	now := time.Date(2025, time.August, 15, 23, 45, 0, 0, time.UTC)

	got, err := ValidateEntry(EntryInput{Income: 100}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := NewDate(2025, time.August, 15)
	if !got.Date.Equal(want.Time) {
		t.Errorf("date = %v, want %v", got.Date, want)
	}

	explicit := NewDate(2025, time.July, 1)
	got, err = ValidateEntry(EntryInput{Income: 100, Date: explicit}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Date.Equal(explicit.Time) {
		t.Errorf("explicit date overwritten: %v", got.Date)
	}
}

func TestTotalBalance(t *testing.T) {
	base := time.Now()
	entries := []LedgerEntry{
		entry("a", NewDate(2025, time.January, 1), 1_000_000, 0, base),
		entry("b", NewDate(2025, time.February, 1), 0, 400_000, base),
		entry("c", Date{}, 50_000, 0, base), // undated still counts toward the running total
	}

	if got := TotalBalance(entries); got != 650_000 {
		t.Errorf("total = %d, want 650000", got)
	}
	if got := TotalBalance(nil); got != 0 {
		t.Errorf("empty total = %d, want 0", got)
	}
}
