package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrBlobNotFound is returned when no blob exists under the given key
var ErrBlobNotFound = errors.New("blob not found")

// ErrStorageFull marks a write rejected because the backing storage is
// out of space. The state layer reacts with its bounded degradation path.
var ErrStorageFull = errors.New("storage full")

// BlobRepository persists string-keyed JSON blobs per account. Each
// account owns an isolated key namespace holding its profile, session
// list, invite list, and flags.
type BlobRepository struct {
	db *pgxpool.Pool
}

// NewBlobRepository creates a new blob repository
func NewBlobRepository(db *pgxpool.Pool) *BlobRepository {
	return &BlobRepository{db: db}
}

// Get retrieves the blob stored under an account's key
func (r *BlobRepository) Get(ctx context.Context, accountID, key string) ([]byte, error) {
	query := `SELECT value FROM blobs WHERE account_id = $1 AND key = $2`
	var value []byte
	err := r.db.QueryRow(ctx, query, accountID, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to get blob %q: %w", key, err)
	}
	return value, nil
}

// Set writes the blob under an account's key, replacing any previous value
func (r *BlobRepository) Set(ctx context.Context, accountID, key string, value []byte) error {
	query := `
		INSERT INTO blobs (account_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query, accountID, key, value, time.Now())
	if err != nil {
		if isDiskFull(err) {
			return fmt.Errorf("failed to set blob %q: %w", key, ErrStorageFull)
		}
		return fmt.Errorf("failed to set blob %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob under an account's key. Deleting a missing key
// is not an error.
func (r *BlobRepository) Delete(ctx context.Context, accountID string, keys ...string) error {
	query := `DELETE FROM blobs WHERE account_id = $1 AND key = ANY($2)`
	_, err := r.db.Exec(ctx, query, accountID, keys)
	if err != nil {
		return fmt.Errorf("failed to delete blobs: %w", err)
	}
	return nil
}

// isDiskFull reports whether the error is Postgres disk_full (SQLSTATE 53100)
func isDiskFull(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "53100"
}
