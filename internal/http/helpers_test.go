package http

import (
	"context"
	"net/url"
	"testing"
	"time"

	"cashflowin/internal/core"
	"cashflowin/internal/store/memory"
)

func seedEntry(t *testing.T, st *memory.Store, date string, income, expense core.Money) {
	t.Helper()
	var d core.Date
	if date != "" {
		parsed, err := core.ParseDate(date)
		if err != nil {
			t.Fatalf("ParseDate(%q) error = %v", date, err)
		}
		d = parsed
	}
	_, err := st.Insert(context.Background(), core.LedgerEntry{
		Date:    d,
		Income:  income,
		Expense: expense,
		Net:     income - expense,
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantYear  int
		wantMonth time.Month
	}{
		{"explicit", "year=2024&month=12", 2024, time.December},
		{"defaults", "", 2025, time.March},
		{"month only", "month=1", 2025, time.January},
		{"invalid month falls back", "year=2024&month=13", 2024, time.March},
		{"garbage ignored", "year=abc&month=xyz", 2025, time.March},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			p := parsePeriod(q, now)
			if p.Year != tt.wantYear || p.Month != tt.wantMonth {
				t.Errorf("parsePeriod() = %d-%d, want %d-%d", p.Year, p.Month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"a\x00b", "ab"},
		{"line1\nline2", "line1\nline2"},
		{"\x1b[31mred\x1b[0m", "[31mred[0m"},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
