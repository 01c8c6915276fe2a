package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bin is one stored document. Record is kept verbatim.
type Bin struct {
	ID        string          `json:"id"`
	Record    json.RawMessage `json:"record"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (db *DB) CreateBin(ctx context.Context, record []byte) (*Bin, error) {
	now := time.Now().UTC()
	bin := &Bin{
		ID:        uuid.New().String(),
		Record:    record,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO bins (id, record, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, bin.ID, string(record), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create bin: %w", err)
	}
	return bin, nil
}

// GetBin returns nil without error when the bin does not exist.
func (db *DB) GetBin(ctx context.Context, id string) (*Bin, error) {
	var b Bin
	var record string
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, record, created_at, updated_at
		FROM bins WHERE id = ?
	`, id).Scan(&b.ID, &record, &b.CreatedAt, &b.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bin: %w", err)
	}
	b.Record = json.RawMessage(record)
	return &b, nil
}

// PutBin overwrites the record of an existing bin. It returns nil without
// error when the bin does not exist.
func (db *DB) PutBin(ctx context.Context, id string, record []byte) (*Bin, error) {
	now := time.Now().UTC()
	result, err := db.conn.ExecContext(ctx, `
		UPDATE bins SET record = ?, updated_at = ? WHERE id = ?
	`, string(record), now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update bin: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update bin: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return db.GetBin(ctx, id)
}

// DeleteBin reports whether a bin was removed.
func (db *DB) DeleteBin(ctx context.Context, id string) (bool, error) {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM bins WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete bin: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete bin: %w", err)
	}
	return n > 0, nil
}

func (db *DB) CountBins(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM bins`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bins: %w", err)
	}
	return n, nil
}
