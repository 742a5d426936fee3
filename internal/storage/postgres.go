package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresSnapshots stores each collection as a single jsonb document.
type PostgresSnapshots struct {
	db *sql.DB
}

func NewPostgresSnapshots(db *sql.DB) (*PostgresSnapshots, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
		  key        text PRIMARY KEY,
		  doc        jsonb NOT NULL,
		  updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &PostgresSnapshots{db: db}, nil
}

func (p *PostgresSnapshots) Save(ctx context.Context, key string, v interface{}) error {
	raw, err := marshalEnvelope(v)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, doc, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET doc = $2, updated_at = $3`,
		key, raw, time.Now())
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (p *PostgresSnapshots) Load(ctx context.Context, key string, v interface{}) error {
	var raw []byte
	err := p.db.QueryRowContext(ctx, `SELECT doc FROM snapshots WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSnapshotMissing
	}
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return unmarshalEnvelope(raw, v)
}
