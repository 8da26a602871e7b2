package sheets

import (
	"context"

	"cashflowin/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryAppender mirrors a ledger entry to an external spreadsheet.
	EntryAppender interface {
		Append(ctx context.Context, e core.LedgerEntry) (rowRef string, err error)
	}
)
