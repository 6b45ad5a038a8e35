package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileDestination writes the JSONL snapshot to a local path.
type FileDestination struct {
	path string
}

// NewFileDestination creates a destination writing to path; parent
// directories are created on first write.
func NewFileDestination(path string) *FileDestination {
	return &FileDestination{path: path}
}

// Write replaces the snapshot file through a temp-file-and-rename sequence,
// so a crash mid-write never truncates the previous snapshot.
func (d *FileDestination) Write(ctx context.Context, data []byte) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp backup: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace backup: %w", err)
	}
	return nil
}
