package memory

import (
	"context"
	"testing"
	"time"

	"cashflowin/internal/core"
)

func TestAppendReturnsSequentialRefs(t *testing.T) {
	s := New()
	ctx := context.Background()

	e := core.LedgerEntry{ID: "a", Income: 1000, Net: 1000, CreatedAt: time.Now()}

	ref1, err := s.Append(ctx, e)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	ref2, err := s.Append(ctx, e)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if ref1 != "mem:1" || ref2 != "mem:2" {
		t.Errorf("refs = %q, %q; want mem:1, mem:2", ref1, ref2)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Append(ctx, core.LedgerEntry{ID: "a"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got := s.Entries()
	got[0].ID = "mutated"

	if s.Entries()[0].ID != "a" {
		t.Error("Entries() exposed internal slice")
	}
}
