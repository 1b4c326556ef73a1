package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			call_name TEXT PRIMARY KEY,
			body TEXT,
			spec_digest TEXT,
			updated_at INTEGER
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// --- NoteStore Implementation ---

func (s *SQLiteStore) SaveNote(ctx context.Context, note *Note) error {
	if note == nil || note.CallName == "" {
		return fmt.Errorf("note requires a call name")
	}
	if strings.TrimSpace(note.Body) == "" {
		return s.DeleteNote(ctx, note.CallName)
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Digests are stored as decimal text: SQLite integers are signed 64-bit.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (call_name, body, spec_digest, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(call_name) DO UPDATE SET
			body=excluded.body,
			spec_digest=excluded.spec_digest,
			updated_at=excluded.updated_at
	`, note.CallName, note.Body, strconv.FormatUint(note.SpecDigest, 10), note.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save note %s: %w", note.CallName, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetNote(ctx context.Context, callName string) (*Note, error) {
	row := s.db.QueryRowContext(ctx, "SELECT call_name, body, spec_digest, updated_at FROM notes WHERE call_name = ?", callName)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note %s: %w", callName, err)
	}
	return note, nil
}

func (s *SQLiteStore) ListNotes(ctx context.Context) ([]*Note, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT call_name, body, spec_digest, updated_at FROM notes ORDER BY call_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (s *SQLiteStore) DeleteNote(ctx context.Context, callName string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE call_name = ?", callName); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", callName, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*Note, error) {
	var note Note
	var digest string
	var updated int64
	if err := row.Scan(&note.CallName, &note.Body, &digest, &updated); err != nil {
		return nil, err
	}
	note.SpecDigest, _ = strconv.ParseUint(digest, 10, 64)
	note.UpdatedAt = time.Unix(updated, 0)
	return &note, nil
}
