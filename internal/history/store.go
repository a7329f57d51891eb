// Package history records dispatched commands in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/dshills/mindcmd/internal/command"
)

// DefaultLimit is the number of entries kept when no limit is given.
const DefaultLimit = 1000

// Entry is one recorded invocation.
type Entry struct {
	ID      string
	Time    time.Time
	Command string
	Raw     string
	Source  string
	Args    string
	Count   int
	Success bool
	Message string
	Error   string
}

// CommandStats aggregates the entries of one command.
type CommandStats struct {
	Command  string
	Runs     int
	Failures int
	LastRun  time.Time
}

// Store is the history database.
type Store struct {
	db     *sql.DB
	limit  int
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLimit sets how many entries are kept. Zero keeps everything.
func WithLimit(n int) Option {
	return func(s *Store) { s.limit = n }
}

// WithLogger sets the logger used by the dispatch hook.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open opens or creates the history database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// A single connection serializes writers; SQLite allows one anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	s := &Store{
		db:     db,
		limit:  DefaultLimit,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DefaultPath returns the per-user history database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "mindcmd", "history.db")
}

// Record stores e and prunes entries beyond the limit.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = s.now()
	}

	_, err := s.db.ExecContext(ctx, insertSQL,
		e.ID, e.Time.UnixMilli(), e.Command, e.Raw, e.Source, e.Args, e.Count, e.Success, e.Message, e.Error)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	if s.limit > 0 {
		if _, err := s.db.ExecContext(ctx, pruneSQL, s.limit); err != nil {
			return fmt.Errorf("prune: %w", err)
		}
	}
	return nil
}

// Recent returns the newest n entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.QueryContext(ctx, recentSQL, n)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		if err := rows.Scan(&e.ID, &ms, &e.Command, &e.Raw, &e.Source, &e.Args, &e.Count, &e.Success, &e.Message, &e.Error); err != nil {
			return nil, fmt.Errorf("recent scan: %w", err)
		}
		e.Time = time.UnixMilli(ms)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ByCommand returns per-command totals for the n most used commands.
func (s *Store) ByCommand(ctx context.Context, n int) ([]CommandStats, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.QueryContext(ctx, byCommandSQL, n)
	if err != nil {
		return nil, fmt.Errorf("by command: %w", err)
	}
	defer rows.Close()

	var stats []CommandStats
	for rows.Next() {
		var cs CommandStats
		var ms int64
		if err := rows.Scan(&cs.Command, &cs.Runs, &cs.Failures, &ms); err != nil {
			return nil, fmt.Errorf("by command scan: %w", err)
		}
		cs.LastRun = time.UnixMilli(ms)
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

// Len returns the number of stored entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EntryFor builds the history entry for a finished invocation.
func EntryFor(inv *command.Invocation, result *command.Result) Entry {
	return Entry{
		ID:      inv.ID.String(),
		Command: inv.Name,
		Raw:     inv.Raw,
		Source:  inv.Source.String(),
		Args:    inv.Args.Format(),
		Count:   inv.Count,
		Success: result.Success,
		Message: result.Message,
		Error:   result.Error,
	}
}

// PostDispatch records every dispatched invocation. Failures to write are
// logged, never surfaced to the command.
func (s *Store) PostDispatch(ctx context.Context, inv *command.Invocation, result *command.Result) {
	if err := s.Record(ctx, EntryFor(inv, result)); err != nil {
		s.logger.Warn("failed to record history", zap.String("command", inv.Name), zap.Error(err))
	}
}
