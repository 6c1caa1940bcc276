package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
)

var _ port.KVStorage = (*SQLKV)(nil)

// A SQLKV stores values in the kv_entries table.
type SQLKV struct {
	sqldb sqldb
}

func NewSQLKV(sqldb sqldb) SQLKV {
	return SQLKV{sqldb}
}

func (s SQLKV) Get(ctx context.Context, key string) (string, error) {
	const op = "SQLKV.Get"

	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := s.sqldb.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w: %q", op, domain.ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s SQLKV) Set(ctx context.Context, key, value string) error {
	const op = "SQLKV.Set"

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.sqldb.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
