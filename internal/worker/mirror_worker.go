package worker

import (
	"context"
	"fmt"
	"log/slog"

	"cashflowin/internal/amqp"
	"cashflowin/internal/core"
	"cashflowin/internal/sheets"
	"cashflowin/internal/storage"
)

// MirrorWorker copies ledger entries from SQLite to Google Sheets.
type MirrorWorker struct {
	storage   *storage.SQLiteRepository
	sheets    sheets.EntryAppender
	batchSize int
}

func NewMirrorWorker(storage *storage.SQLiteRepository, sheets sheets.EntryAppender, batchSize int) *MirrorWorker {
	return &MirrorWorker{
		storage:   storage,
		sheets:    sheets,
		batchSize: batchSize,
	}
}

// HandleMirrorMessage processes a single entry mirror message from AMQP
func (w *MirrorWorker) HandleMirrorMessage(ctx context.Context, msg *amqp.EntryMirrorMessage) error {
	slog.InfoContext(ctx, "Processing mirror message", "entry_id", msg.ID)

	entry, err := w.storage.GetEntry(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get entry from storage: %w", err)
	}

	if err := w.mirrorEntryToSheets(ctx, entry.ID, entry); err != nil {
		return fmt.Errorf("mirror entry to sheets: %w", err)
	}

	return nil
}

// ProcessPendingEntries processes any entries that haven't been mirrored yet
// This is a backup mechanism in case AMQP messages are lost
func (w *MirrorWorker) ProcessPendingEntries(ctx context.Context) error {
	pending, err := w.storage.ListUnmirrored(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending entries: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending entries", "count", len(pending))

	for _, entry := range pending {
		if err := w.mirrorEntryToSheets(ctx, entry.ID, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror entry", "entry_id", entry.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupMirrorCheck mirrors any pending entries at worker startup.
// This recovers from missed AMQP messages or worker downtime.
func (w *MirrorWorker) StartupMirrorCheck(ctx context.Context) error {
	// Larger batch for the startup pass
	pending, err := w.storage.ListUnmirrored(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending entries for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending entries found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending entries on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, entry := range pending {
		if err := w.mirrorEntryToSheets(ctx, entry.ID, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror entry during startup",
				"entry_id", entry.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup mirror completed",
		"total", len(pending),
		"mirrored", successCount,
		"errors", errorCount)

	return nil
}

func (w *MirrorWorker) mirrorEntryToSheets(ctx context.Context, id string, entry core.LedgerEntry) error {
	ref, err := w.sheets.Append(ctx, entry)
	if err != nil {
		// Mark as mirror error
		if markErr := w.storage.MarkMirrorError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark mirror error", "entry_id", id, "error", markErr)
		}
		return fmt.Errorf("append to sheets: %w", err)
	}

	if err := w.storage.MarkMirrored(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as mirrored", "entry_id", id, "error", err)
		// Don't return error here - the append actually worked
	}

	slog.InfoContext(ctx, "Successfully mirrored entry",
		"entry_id", id,
		"sheets_ref", ref,
		"net", int64(entry.Net))

	return nil
}
