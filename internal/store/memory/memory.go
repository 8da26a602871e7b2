// Package memory is an in-process record store used by tests and the
// default development backend. Semantics match the sqlite store: inserts
// are append-only, CreatedAt is assigned strictly increasing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"cashflowin/internal/core"
	"cashflowin/internal/store"
)

type Store struct {
	mu          sync.Mutex
	entries     []core.LedgerEntry
	users       map[string]store.User
	lastCreated time.Time
}

func New() *Store {
	return &Store{users: make(map[string]store.User)}
}

// Insert implements store.EntryInserter.
func (s *Store) Insert(_ context.Context, e core.LedgerEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if !now.After(s.lastCreated) {
		now = s.lastCreated.Add(time.Nanosecond)
	}
	s.lastCreated = now

	e.ID = uuid.NewString()
	e.CreatedAt = now
	s.entries = append(s.entries, e)

	return e.ID, nil
}

// ListAll implements store.EntryLister. Entries are appended in
// CreatedAt order, so the slice is already sorted.
func (s *Store) ListAll(_ context.Context) ([]core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// FindUserByName implements store.UserFinder.
func (s *Store) FindUserByName(_ context.Context, name string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[name]
	if !ok {
		return store.User{}, store.ErrUserNotFound
	}
	return u, nil
}

// PutUser seeds a login account. Dev/test convenience; the sqlite store
// is managed through the useradd CLI instead.
func (s *Store) PutUser(u store.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Name] = u
}
