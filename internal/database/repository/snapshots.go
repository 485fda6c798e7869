package repository

import (
	"context"
	"database/sql"
)

// SnapshotRepo handles key-value snapshots. The whole task list is stored
// as one serialized value under a single key, overwritten on every change.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

// Get returns the stored value for key, or (nil, nil) when absent.
func (r *SnapshotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Put overwrites the stored value for key.
func (r *SnapshotRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO snapshots(key, value, updated_at)
	VALUES (?, ?, datetime('now'))
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 updated_at=excluded.updated_at;
	`, key, string(value))
	return err
}

// Delete removes the stored value for key. Missing keys are a no-op.
func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	return err
}
