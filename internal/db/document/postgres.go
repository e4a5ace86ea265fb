package document

import (
	"context"
	"errors"
	e "rewatch/internal/core/domain/errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const DefaultKey = "reminders"

// Postgres keeps the document in a row of the storage table. The row is
// locked for the duration of every rewrite.
type Postgres struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgres(ctx context.Context, pool *pgxpool.Pool, key string) (*Postgres, error) {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	if key == "" {
		key = DefaultKey
	}
	_, err := pool.Exec(
		ctx,
		`INSERT INTO storage (key, value) VALUES ($1, '[]'::jsonb) ON CONFLICT (key) DO NOTHING`,
		key,
	)
	if err != nil {
		return nil, err
	}
	return &Postgres{pool: pool, key: key}, nil
}

func (p *Postgres) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := p.pool.QueryRow(ctx, `SELECT value::text FROM storage WHERE key = $1`, p.key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (p *Postgres) Rewrite(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var current []byte
	var value string
	err = tx.QueryRow(ctx, `SELECT value::text FROM storage WHERE key = $1 FOR UPDATE`, p.key).Scan(&value)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return err
	default:
		current = []byte(value)
	}

	next, err := fn(current)
	if err != nil || next == nil {
		return err
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO storage (key, value) VALUES ($1, $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		p.key,
		string(next),
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
