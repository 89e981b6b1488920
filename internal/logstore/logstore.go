// Package logstore adapts the Markdown backing file to its stores: the
// hosting API holding the durable copy, and a local read-only fallback. The
// version token (the file's blob SHA on the hosting side) gives writers
// optimistic concurrency; this package surfaces conflicts, it never retries.
package logstore

import (
	"context"
	"errors"
)

// Header is the default content of a backing file that does not exist yet.
const Header = "# Commits\n\n"

// Snapshot is one read of the backing file. SHA is the version token a
// subsequent Write must present; it is empty for the first-write case.
type Snapshot struct {
	Content string
	SHA     string
}

// ErrConflict is returned by Write when the store's current version no longer
// matches the presented token. The caller must re-read before writing again.
var ErrConflict = errors.New("logstore: version token mismatch")

// ErrReadOnly is returned by stores that cannot accept writes.
var ErrReadOnly = errors.New("logstore: store is read-only")

// Store reads and conditionally writes the full backing file.
type Store interface {
	// Read returns the current content and version token. A missing file is
	// not an error: implementations return the default Header with no token.
	Read(ctx context.Context) (Snapshot, error)

	// Write replaces the full content, conditioned on sha matching the
	// store's current version (empty sha creates the file). It returns the
	// store-assigned change identifier on success.
	Write(ctx context.Context, content, sha, message string) (string, error)
}
