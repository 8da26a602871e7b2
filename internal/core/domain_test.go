package core

import (
	"testing"
	"time"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr error
	}{
		{"", 0, nil},
		{"0", 0, nil},
		{"500000", 500_000, nil},
		{"20000000", 20_000_000, nil},
		{"1000000.00", 1_000_000, nil},
		{"12.50", 0, ErrInvalidAmount},
		{"-5", 0, ErrNegativeAmount},
		{"abc", 0, ErrInvalidAmount},
		// Amounts past int64 must not wrap into small values.
		{"9223372036854775808", 0, ErrAmountExceedsLimit},
		{"18446744073709551617", 0, ErrAmountExceedsLimit},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if err != tt.wantErr {
				t.Fatalf("ParseMoney(%q) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMoney(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.January || d.Day() != 10 {
		t.Errorf("parsed %v", d)
	}

	if _, err := ParseDate("10/01/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestPeriodComparisons(t *testing.T) {
	p := Period{Year: 2025, Month: time.March}

	tests := []struct {
		name     string
		date     Date
		contains bool
		before   bool
	}{
		{"inside", NewDate(2025, time.March, 15), true, false},
		{"previous month", NewDate(2025, time.February, 28), false, true},
		{"previous year", NewDate(2024, time.December, 31), false, true},
		{"next month", NewDate(2025, time.April, 1), false, false},
		{"next year", NewDate(2026, time.January, 1), false, false},
		{"absent date", Date{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.date); got != tt.contains {
				t.Errorf("Contains = %v, want %v", got, tt.contains)
			}
			if got := p.IsBefore(tt.date); got != tt.before {
				t.Errorf("IsBefore = %v, want %v", got, tt.before)
			}
		})
	}
}

func TestNewPeriod(t *testing.T) {
	if _, err := NewPeriod(2025, 0); err != ErrInvalidPeriod {
		t.Errorf("month 0 err = %v, want ErrInvalidPeriod", err)
	}
	if _, err := NewPeriod(2025, 13); err != ErrInvalidPeriod {
		t.Errorf("month 13 err = %v, want ErrInvalidPeriod", err)
	}
	p, err := NewPeriod(2025, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Month != time.January {
		t.Errorf("month = %v, want January", p.Month)
	}
}
