package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"cashflowin/internal/core"
	"cashflowin/internal/store"
)

// createdAtLayout keeps timestamps fixed-width so the lexicographic
// ORDER BY created_at matches chronological order. RFC3339Nano would
// drop trailing fraction zeros and break that.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository is the durable record store. Ledger entries are
// append-only: the repository exposes no update or delete for them.
type SQLiteRepository struct {
	db *sql.DB

	mu          sync.Mutex
	lastCreated time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements store.EntryInserter. The repository assigns the ID
// and CreatedAt; CreatedAt is kept strictly increasing across inserts so
// it can serve as the durable ordering key.
func (r *SQLiteRepository) Insert(ctx context.Context, e core.LedgerEntry) (string, error) {
	id := uuid.NewString()
	createdAt := r.nextCreatedAt()

	var entryDate any
	if !e.Date.IsZero() {
		entryDate = e.Date.Format("2006-01-02")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (id, entry_date, income, income_note, expense, expense_note, net, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, entryDate, int64(e.Income), e.IncomeNote, int64(e.Expense), e.ExpenseNote,
		int64(e.Net), createdAt.Format(createdAtLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert entry: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", id,
		"date", e.Date.String(),
		"income", int64(e.Income),
		"expense", int64(e.Expense),
		"net", int64(e.Net))

	return id, nil
}

// ListAll implements store.EntryLister, ordered by CreatedAt ascending.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_date, income, income_note, expense, expense_note, net, created_at
		FROM entries
		ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []core.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// GetEntry retrieves a single entry by ID. Used by the mirror worker.
func (r *SQLiteRepository) GetEntry(ctx context.Context, id string) (core.LedgerEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, entry_date, income, income_note, expense, expense_note, net, created_at
		FROM entries
		WHERE id = ?`, id)

	e, err := scanEntry(row)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	return e, nil
}

// ListUnmirrored returns the oldest entries not yet copied to the backup
// spreadsheet, up to limit.
func (r *SQLiteRepository) ListUnmirrored(ctx context.Context, limit int) ([]core.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_date, income, income_note, expense, expense_note, net, created_at
		FROM entries
		WHERE mirrored_at IS NULL
		ORDER BY created_at ASC, rowid ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unmirrored entries: %w", err)
	}
	defer rows.Close()

	var entries []core.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unmirrored entries: %w", err)
	}

	return entries, nil
}

// MarkMirrored records a successful copy to the backup spreadsheet. The
// entry itself stays immutable; only mirror bookkeeping changes.
func (r *SQLiteRepository) MarkMirrored(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE entries SET mirrored_at = ? WHERE id = ?`,
		time.Now().UTC().Format(createdAtLayout), id,
	); err != nil {
		return fmt.Errorf("mark entry mirrored: %w", err)
	}

	slog.InfoContext(ctx, "Entry marked as mirrored", "id", id)
	return nil
}

// MarkMirrorError counts a failed mirror attempt for later inspection.
func (r *SQLiteRepository) MarkMirrorError(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE entries SET mirror_attempts = mirror_attempts + 1 WHERE id = ?`, id,
	); err != nil {
		return fmt.Errorf("mark entry mirror error: %w", err)
	}

	slog.WarnContext(ctx, "Entry marked with mirror error", "id", id)
	return nil
}

// FindUserByName implements store.UserFinder.
func (r *SQLiteRepository) FindUserByName(ctx context.Context, name string) (store.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, password_hash, role, active FROM users WHERE name = ?`, name)

	var u store.User
	var active int64
	if err := row.Scan(&u.Name, &u.PasswordHash, &u.Role, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.User{}, store.ErrUserNotFound
		}
		return store.User{}, fmt.Errorf("find user %s: %w", name, err)
	}
	u.Active = active != 0

	return u, nil
}

// UpsertUser creates or replaces a login account. Used by the useradd CLI.
func (r *SQLiteRepository) UpsertUser(ctx context.Context, u store.User) error {
	active := 0
	if u.Active {
		active = 1
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO users (name, password_hash, role, active, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			password_hash = excluded.password_hash,
			role = excluded.role,
			active = excluded.active`,
		u.Name, u.PasswordHash, u.Role, active, time.Now().UTC().Format(createdAtLayout),
	); err != nil {
		return fmt.Errorf("upsert user %s: %w", u.Name, err)
	}

	slog.InfoContext(ctx, "User saved", "name", u.Name, "role", u.Role, "active", u.Active)
	return nil
}

func (r *SQLiteRepository) nextCreatedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if !now.After(r.lastCreated) {
		now = r.lastCreated.Add(time.Nanosecond)
	}
	r.lastCreated = now
	return now
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.LedgerEntry, error) {
	var (
		e         core.LedgerEntry
		entryDate sql.NullString
		income    int64
		expense   int64
		net       int64
		createdAt string
	)

	if err := row.Scan(&e.ID, &entryDate, &income, &e.IncomeNote, &expense, &e.ExpenseNote, &net, &createdAt); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("scan entry: %w", err)
	}

	if entryDate.Valid && entryDate.String != "" {
		d, err := core.ParseDate(entryDate.String)
		if err != nil {
			return core.LedgerEntry{}, fmt.Errorf("parse entry date %q: %w", entryDate.String, err)
		}
		e.Date = d
	}

	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	e.Income = core.Money(income)
	e.Expense = core.Money(expense)
	e.Net = core.Money(net)
	e.CreatedAt = ts

	return e, nil
}
