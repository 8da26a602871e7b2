package memory

import (
	"context"
	"testing"
	"time"

	"cashflowin/internal/core"
	"cashflowin/internal/store"
)

func TestInsertAssignsIDAndOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	id1, err := s.Insert(ctx, core.LedgerEntry{Income: 100, Net: 100})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id2, err := s.Insert(ctx, core.LedgerEntry{Expense: 30, Net: -30})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id1 == "" || id1 == id2 {
		t.Errorf("ids not unique: %q, %q", id1, id2)
	}

	entries, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("listed %d entries, want 2", len(entries))
	}
	if entries[0].ID != id1 || entries[1].ID != id2 {
		t.Errorf("entries out of insertion order")
	}
	if !entries[1].CreatedAt.After(entries[0].CreatedAt) {
		t.Errorf("created_at not strictly increasing: %v then %v",
			entries[0].CreatedAt, entries[1].CreatedAt)
	}
}

func TestListAllCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Insert(ctx, core.LedgerEntry{Income: 1, Net: 1, Date: core.NewDate(2025, time.January, 1)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	first, _ := s.ListAll(ctx)
	first[0].Income = 999

	second, _ := s.ListAll(ctx)
	if second[0].Income != 1 {
		t.Error("ListAll exposed internal state")
	}
}

func TestUsers(t *testing.T) {
	s := New()

	if _, err := s.FindUserByName(context.Background(), "azka"); err != store.ErrUserNotFound {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}

	s.PutUser(store.User{Name: "azka", Role: "admin", Active: true})
	u, err := s.FindUserByName(context.Background(), "azka")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.Role != "admin" || !u.Active {
		t.Errorf("user = %+v", u)
	}
}
