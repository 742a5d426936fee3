package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSnapshots keeps one JSON file per collection under a data directory.
// This is the default driver for a kiosk deployment with no database.
type FileSnapshots struct {
	dir string
}

func NewFileSnapshots(dir string) (*FileSnapshots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileSnapshots{dir: dir}, nil
}

func (f *FileSnapshots) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(f.dir, name)
}

func (f *FileSnapshots) Save(ctx context.Context, key string, v interface{}) error {
	raw, err := marshalEnvelope(v)
	if err != nil {
		return err
	}
	// write-then-rename so a crash mid-write cannot truncate the snapshot
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("commit snapshot %s: %w", key, err)
	}
	return nil
}

func (f *FileSnapshots) Load(ctx context.Context, key string, v interface{}) error {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return ErrSnapshotMissing
	}
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return unmarshalEnvelope(raw, v)
}
