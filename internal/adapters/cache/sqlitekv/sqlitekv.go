// Package sqlitekv implements the TTL key-value cache on the application's
// SQLite database, for single-binary deployments without Redis.
package sqlitekv

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
)

type Store struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

func New(db *sql.DB) *Store {
	return &Store{db: db, sq: sq.StatementBuilder}
}

// Get returns (nil, nil) when the key is absent or expired. Expired rows are
// removed lazily on read.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	q := s.sq.Select("value", "expires_at").From("kv_cache").Where(sq.Eq{"key": key}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	var value []byte
	var expires string
	err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&value, &expires)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	exp, err := time.Parse(time.RFC3339, expires)
	if err != nil || !exp.After(time.Now().UTC()) {
		del := s.sq.Delete("kv_cache").Where(sq.Eq{"key": key})
		sqlStr, args, _ = del.ToSql()
		_, _ = s.db.ExecContext(ctx, sqlStr, args...)
		return nil, nil
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expires := time.Now().UTC().Add(ttl).Format(time.RFC3339)
	q := s.sq.Insert("kv_cache").
		Columns("key", "value", "expires_at").
		Values(key, value, expires).
		Suffix("ON CONFLICT(key) DO UPDATE SET value=excluded.value, expires_at=excluded.expires_at")
	sqlStr, args, _ := q.ToSql()
	_, err := s.db.ExecContext(ctx, sqlStr, args...)
	return err
}
