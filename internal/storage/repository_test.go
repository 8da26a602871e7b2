package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cashflowin/internal/core"
	"cashflowin/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestInsertAndListAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inputs := []core.LedgerEntry{
		{Date: core.NewDate(2025, time.January, 10), Income: 1_000_000, IncomeNote: "gaji", Net: 1_000_000},
		{Date: core.NewDate(2025, time.January, 20), Expense: 300_000, ExpenseNote: "belanja", Net: -300_000},
		{Date: core.Date{}, Income: 50, Net: 50}, // undated entry round-trips as undated
	}

	ids := make(map[string]bool)
	for _, in := range inputs {
		id, err := repo.Insert(ctx, in)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id == "" {
			t.Fatal("empty id assigned")
		}
		if ids[id] {
			t.Fatalf("duplicate id %s", id)
		}
		ids[id] = true
	}

	entries, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != len(inputs) {
		t.Fatalf("listed %d entries, want %d", len(entries), len(inputs))
	}

	for i := 1; i < len(entries); i++ {
		if !entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Errorf("created_at not strictly increasing at %d: %v then %v",
				i, entries[i-1].CreatedAt, entries[i].CreatedAt)
		}
	}

	first := entries[0]
	if first.Income != 1_000_000 || first.IncomeNote != "gaji" || first.Net != 1_000_000 {
		t.Errorf("first entry round trip: %+v", first)
	}
	if !first.Date.Equal(core.NewDate(2025, time.January, 10).Time) {
		t.Errorf("first entry date = %v", first.Date)
	}
	if !entries[2].Date.IsZero() {
		t.Errorf("undated entry came back dated: %v", entries[2].Date)
	}
}

func TestListAll_Empty(t *testing.T) {
	repo := newTestRepo(t)

	entries, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("listed %d entries from empty store", len(entries))
	}
}

func TestMirrorBookkeeping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Insert(ctx, core.LedgerEntry{Income: 100, Net: 100})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id2, err := repo.Insert(ctx, core.LedgerEntry{Expense: 40, Net: -40})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	pending, err := repo.ListUnmirrored(ctx, 10)
	if err != nil {
		t.Fatalf("list unmirrored: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	if pending[0].ID != id1 {
		t.Errorf("oldest pending = %s, want %s", pending[0].ID, id1)
	}

	if err := repo.MarkMirrored(ctx, id1); err != nil {
		t.Fatalf("mark mirrored: %v", err)
	}
	if err := repo.MarkMirrorError(ctx, id2); err != nil {
		t.Fatalf("mark mirror error: %v", err)
	}

	pending, err = repo.ListUnmirrored(ctx, 10)
	if err != nil {
		t.Fatalf("list unmirrored: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id2 {
		t.Errorf("pending after mark = %+v", pending)
	}

	got, err := repo.GetEntry(ctx, id1)
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if got.Income != 100 {
		t.Errorf("entry round trip: %+v", got)
	}
}

func TestUsers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.FindUserByName(ctx, "azka"); err != store.ErrUserNotFound {
		t.Fatalf("missing user err = %v, want ErrUserNotFound", err)
	}

	u := store.User{Name: "azka", PasswordHash: "$argon2id$...", Role: "admin", Active: true}
	if err := repo.UpsertUser(ctx, u); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.FindUserByName(ctx, "azka")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != u {
		t.Errorf("user round trip = %+v, want %+v", got, u)
	}

	// Deactivation goes through the same upsert.
	u.Active = false
	if err := repo.UpsertUser(ctx, u); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = repo.FindUserByName(ctx, "azka")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Active {
		t.Error("user still active after deactivation")
	}
}

func TestCreatedAtTextOrderMatchesTimeOrder(t *testing.T) {
	// An exact-second timestamp must not sort after fractional
	// timestamps within the same second.
	times := []time.Time{
		time.Date(2025, time.March, 1, 10, 0, 5, 0, time.UTC),
		time.Date(2025, time.March, 1, 10, 0, 5, 500_000_000, time.UTC),
		time.Date(2025, time.March, 1, 10, 0, 6, 0, time.UTC),
	}

	prev := ""
	for _, ts := range times {
		got := ts.Format(createdAtLayout)
		if got <= prev {
			t.Fatalf("formatted %q does not sort after %q", got, prev)
		}
		back, err := time.Parse(createdAtLayout, got)
		if err != nil {
			t.Fatalf("parse %q: %v", got, err)
		}
		if !back.Equal(ts) {
			t.Fatalf("round trip %v -> %v", ts, back)
		}
		prev = got
	}
}
