package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reflexum/internal/modules/report/domain"
	reportout "reflexum/internal/modules/report/port/out"

	_ "modernc.org/sqlite"
)

var _ reportout.Journal = (*SQLiteJournal)(nil)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	journal := &SQLiteJournal{db: db}
	if err := journal.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return journal, nil
}

func (s *SQLiteJournal) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS journal (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  triggered_by TEXT NOT NULL,
  status TEXT NOT NULL,
  target TEXT,
  detail TEXT,
  period_from TEXT,
  period_to TEXT,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS journal_created_at ON journal(created_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create journal table: %w", err)
	}
	return nil
}

func (s *SQLiteJournal) Record(ctx context.Context, entry domain.JournalEntry) error {
	const stmt = `
INSERT INTO journal (id, kind, triggered_by, status, target, detail, period_from, period_to, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		string(entry.Kind),
		entry.Trigger,
		entry.Status,
		entry.Target,
		entry.Detail,
		formatTime(entry.PeriodFrom),
		formatTime(entry.PeriodTo),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (s *SQLiteJournal) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, kind, triggered_by, status, target, detail, period_from, period_to, created_at
FROM journal ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	out := []domain.JournalEntry{}
	for rows.Next() {
		var (
			entry                    domain.JournalEntry
			kind                     string
			target, detail, from, to sql.NullString
			createdAt                string
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.Trigger, &entry.Status, &target, &detail, &from, &to, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Kind = domain.EntryKind(kind)
		entry.Target = target.String
		entry.Detail = detail.String
		entry.PeriodFrom = parseTime(from.String)
		entry.PeriodTo = parseTime(to.String)
		entry.CreatedAt = parseTime(createdAt)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return out, nil
}

func (s *SQLiteJournal) Close() error {
	return s.db.Close()
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
