// Package auth is the session guard: it checks login credentials against
// the user store and mints/validates session tokens. The ledger itself
// never sees more than the resulting identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cashflowin/internal/store"
)

// Identity is the authenticated user as seen by the rest of the system.
type Identity struct {
	Name string
	Role string
}

var (
	// ErrInvalidCredentials covers both unknown users and wrong
	// passwords, so a login attempt cannot probe for account names.
	ErrInvalidCredentials = errors.New("nama atau password salah")
	// ErrAccountInactive is returned for valid credentials on a
	// deactivated account.
	ErrAccountInactive = errors.New("akun ini tidak aktif")
)

// Guard authenticates users against a user store.
type Guard struct {
	users store.UserFinder
}

func NewGuard(users store.UserFinder) *Guard {
	return &Guard{users: users}
}

// CheckCredentials verifies the name/password pair and returns the
// identity on success. Consulted only at login; afterwards the session
// token carries the identity.
func (g *Guard) CheckCredentials(ctx context.Context, name, password string) (Identity, error) {
	user, err := g.users.FindUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			slog.InfoContext(ctx, "Login rejected", "reason", "unknown_user")
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("find user: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return Identity{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "Login rejected", "reason", "bad_password", "name", name)
		return Identity{}, ErrInvalidCredentials
	}

	if !user.Active {
		slog.InfoContext(ctx, "Login rejected", "reason", "inactive_account", "name", name)
		return Identity{}, ErrAccountInactive
	}

	slog.InfoContext(ctx, "Login accepted", "name", user.Name, "role", user.Role)
	return Identity{Name: user.Name, Role: user.Role}, nil
}
