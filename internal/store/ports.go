// Package store defines the ports for the durable record store. The
// ledger treats the store as an append-only collection: entries can be
// inserted and scanned, never updated or deleted.
package store

import (
	"context"
	"errors"

	"cashflowin/internal/core"
)

type (
	// EntryInserter appends one validated entry. The store assigns the
	// ID and CreatedAt; an insert either fully commits or is absent.
	EntryInserter interface {
		Insert(ctx context.Context, e core.LedgerEntry) (id string, err error)
	}

	// EntryLister retrieves the full entry set ordered by CreatedAt
	// ascending.
	EntryLister interface {
		ListAll(ctx context.Context) ([]core.LedgerEntry, error)
	}

	// EntryStore is the complete record-store surface the ledger needs.
	EntryStore interface {
		EntryInserter
		EntryLister
	}

	// UserFinder looks up login accounts by name.
	UserFinder interface {
		FindUserByName(ctx context.Context, name string) (User, error)
	}
)

// User is a login account. Passwords are stored as argon2id hashes,
// never in clear.
type User struct {
	Name         string
	PasswordHash string
	Role         string
	Active       bool
}

// ErrUserNotFound is returned by UserFinder when no account matches.
var ErrUserNotFound = errors.New("user not found")
