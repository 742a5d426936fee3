package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collection keys under which snapshots are stored.
const (
	KeyProducts   = "products"
	KeyCategories = "categories"
	KeyCustomers  = "customers"
	KeyOrders     = "orders"
	KeyUsers      = "users"
)

// ErrSnapshotMissing is returned by Load when no snapshot exists for a key.
var ErrSnapshotMissing = errors.New("snapshot missing")

// Snapshots is the durability contract: whole-collection writes keyed by
// collection name, read once at process start. No partial or delta writes.
type Snapshots interface {
	Save(ctx context.Context, key string, v interface{}) error
	Load(ctx context.Context, key string, v interface{}) error
}

const envelopeVersion = 1

// envelope versions the serialized format so a future schema change can be
// migrated instead of silently misread.
type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

func marshalEnvelope(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return json.Marshal(envelope{
		Version: envelopeVersion,
		SavedAt: time.Now().UTC(),
		Data:    data,
	})
}

func unmarshalEnvelope(raw []byte, v interface{}) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unmarshal snapshot envelope: %w", err)
	}
	if env.Version != envelopeVersion {
		return fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	return json.Unmarshal(env.Data, v)
}
