package services

import (
	"context"
	"fmt"
	"log/slog"

	"cashflowin/internal/core"
	"cashflowin/internal/storage"
	"cashflowin/internal/store"
)

// MirrorPublisher publishes entry mirror messages for the worker.
type MirrorPublisher interface {
	PublishEntryMirror(ctx context.Context, id string) error
	Close() error
}

// LedgerService orchestrates ledger operations across SQLite and AMQP
type LedgerService struct {
	storage   *storage.SQLiteRepository
	publisher MirrorPublisher
}

func NewLedgerService(storage *storage.SQLiteRepository, publisher MirrorPublisher) *LedgerService {
	return &LedgerService{
		storage:   storage,
		publisher: publisher,
	}
}

// Insert saves an entry locally and publishes a mirror message
func (s *LedgerService) Insert(ctx context.Context, e core.LedgerEntry) (string, error) {
	// Save to SQLite first (fast, reliable)
	id, err := s.storage.Insert(ctx, e)
	if err != nil {
		return "", fmt.Errorf("save entry: %w", err)
	}

	// Publish async mirror message (non-blocking)
	if err := s.publishMirrorMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mirror message",
			"entry_id", id, "error", err)
		// Don't fail the request - entry is saved locally
	}

	return id, nil
}

// ListAll returns every stored entry in insertion order
func (s *LedgerService) ListAll(ctx context.Context) ([]core.LedgerEntry, error) {
	return s.storage.ListAll(ctx)
}

// FindUserByName looks up a login account
func (s *LedgerService) FindUserByName(ctx context.Context, name string) (store.User, error) {
	return s.storage.FindUserByName(ctx, name)
}

func (s *LedgerService) publishMirrorMessage(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping mirror message")
		return nil
	}

	return s.publisher.PublishEntryMirror(ctx, id)
}

// Close closes both storage and AMQP connections
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
