package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// dialect holds the statements that differ between SQL backends.
type dialect struct {
	get string
	set string
	del string
}

var sqliteDialect = dialect{
	get: `SELECT value FROM kv WHERE key = ?`,
	set: `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	del: `DELETE FROM kv WHERE key = ?`,
}

var postgresDialect = dialect{
	get: `SELECT value FROM kv WHERE key = $1`,
	set: `INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
	del: `DELETE FROM kv WHERE key = $1`,
}

// SQLStore is a Store over a single kv table.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, s.db, key, value)
}

// SetMany writes every value in one transaction, in key order.
func (s *SQLStore) SetMany(ctx context.Context, values map[string][]byte) error {
	return withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		for _, k := range sortedKeys(values) {
			if err := s.set(ctx, tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.d.del, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) set(ctx context.Context, db DBTX, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := db.ExecContext(ctx, s.d.set, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}
