package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/platify/platify-core/internal/logger"
)

const (
	queryGetEntry    = `SELECT value FROM kv_entries WHERE key = $1`
	queryUpsertEntry = `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	queryDeleteEntry = `DELETE FROM kv_entries WHERE key = $1`
	queryListKeys    = `SELECT key FROM kv_entries WHERE starts_with(key, $1) ORDER BY key`
)

// PostgresStore keeps entries in the kv_entries table created by database.Migrate
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps a migrated pool. Closing the store closes the pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get implements Store
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(ctx, queryGetEntry, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s %q: %w", ErrMsgReadFailed, key, err)
	}
	return value, true, nil
}

// Apply implements Store inside a single transaction
func (s *PostgresStore) Apply(ctx context.Context, batch *Batch) error {
	ops := batch.Ops()
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer safeRollback(ctx, tx)

	pgBatch := &pgx.Batch{}
	for _, op := range ops {
		if op.Delete {
			pgBatch.Queue(queryDeleteEntry, op.Key)
			continue
		}
		pgBatch.Queue(queryUpsertEntry, op.Key, op.Value)
	}
	if err := tx.SendBatch(ctx, pgBatch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}
	return nil
}

// Keys implements Store
func (s *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Query(ctx, queryListKeys, prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}
	return keys, nil
}

// Close implements Store
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// safeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func safeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgFailedToRollback, "error", err)
	}
}
