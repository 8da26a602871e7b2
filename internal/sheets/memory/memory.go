package memory

import (
	"context"
	"fmt"
	"sync"

	"cashflowin/internal/core"
)

// Store is an in-process EntryAppender used by the memory backend and tests.
type Store struct {
	mu    sync.Mutex
	items []core.LedgerEntry
}

func New() *Store {
	return &Store{}
}

// Append stores the entry and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e core.LedgerEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Entries returns a copy of everything appended so far.
func (s *Store) Entries() []core.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.LedgerEntry, len(s.items))
	copy(out, s.items)
	return out
}
