package logstore

import (
	"context"
	"fmt"
	"os"
)

// Local reads a local copy of the backing file. It exists only so listings
// keep working when the hosting API is down; it never accepts writes.
type Local struct {
	path string
}

// NewLocal builds a read-only store over the file at path.
func NewLocal(path string) *Local {
	return &Local{path: path}
}

// Read returns the local file content with no version token. A missing file
// yields the default header so displays stay coherent.
func (l *Local) Read(ctx context.Context) (Snapshot, error) {
	raw, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return Snapshot{Content: Header}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read local copy: %w", err)
	}
	return Snapshot{Content: string(raw)}, nil
}

// Write always fails; the local copy is display-only.
func (l *Local) Write(ctx context.Context, content, sha, message string) (string, error) {
	return "", ErrReadOnly
}
