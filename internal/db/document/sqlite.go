package document

import (
	"context"
	"database/sql"
	"errors"
	e "rewatch/internal/core/domain/errors"

	_ "github.com/mattn/go-sqlite3"
)

// Sqlite keeps the document in a local database file. Rewrites run in
// immediate transactions so concurrent writers queue up.
type Sqlite struct {
	db  *sql.DB
	key string
}

func OpenSqlite(ctx context.Context, path string, key string) (*Sqlite, error) {
	db, err := sql.Open("sqlite3", path+"?_txlock=immediate&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	store, err := NewSqlite(ctx, db, key)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewSqlite(ctx context.Context, db *sql.DB, key string) (*Sqlite, error) {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	if key == "" {
		key = DefaultKey
	}
	s := &Sqlite{db: db, key: key}
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sqlite) init(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO storage (key, value) VALUES (?, '[]')`, s.key)
	return err
}

// Sibling opens another document in the same database file. Closing the
// original closes both.
func (s *Sqlite) Sibling(ctx context.Context, key string) (*Sqlite, error) {
	return NewSqlite(ctx, s.db, key)
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}

func (s *Sqlite) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *Sqlite) Rewrite(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current []byte
	var value string
	err = tx.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, s.key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	default:
		current = []byte(value)
	}

	next, err := fn(current)
	if err != nil || next == nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		s.key,
		string(next),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}
