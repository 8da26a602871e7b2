package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cashflowin/internal/core"
	"cashflowin/internal/storage"
)

type fakePublisher struct {
	published []string
	err       error
	closed    bool
}

func (f *fakePublisher) PublishEntryMirror(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := storage.RunMigrations(dbPath); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	return repo
}

func TestInsertPublishesMirrorMessage(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewLedgerService(newTestRepo(t), pub)
	defer svc.Close()

	id, err := svc.Insert(ctx, core.LedgerEntry{Income: 250000, Net: 250000})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if id == "" {
		t.Fatal("Insert() returned empty id")
	}

	if len(pub.published) != 1 || pub.published[0] != id {
		t.Errorf("published = %v, want [%s]", pub.published, id)
	}

	entries, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ListAll() returned %d entries, want 1", len(entries))
	}
}

func TestInsertSucceedsWhenPublishFails(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewLedgerService(newTestRepo(t), pub)
	defer svc.Close()

	id, err := svc.Insert(ctx, core.LedgerEntry{Expense: 50000, Net: -50000})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if id == "" {
		t.Fatal("Insert() returned empty id")
	}
}

func TestInsertWithoutPublisher(t *testing.T) {
	svc := NewLedgerService(newTestRepo(t), nil)
	defer svc.Close()

	if _, err := svc.Insert(context.Background(), core.LedgerEntry{Income: 1000, Net: 1000}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
}

func TestCloseClosesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(newTestRepo(t), pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pub.closed {
		t.Error("publisher was not closed")
	}
}
