package logstore

import (
	"context"
	"log/slog"

	"taproom/internal/platform/metrics"
)

// Fallback composes the remote store with a local read-only copy. Reads go
// remote-first and degrade to the local copy; writes always hit the remote.
// Note a fallback read carries no version token, so content served from the
// local copy is display-only and cannot seed a write.
type Fallback struct {
	remote  Store
	local   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewFallback wraps remote with the local display copy. metrics may be nil.
func NewFallback(remote, local Store, logger *slog.Logger, m *metrics.Metrics) *Fallback {
	return &Fallback{remote: remote, local: local, logger: logger, metrics: m}
}

// Read returns the remote snapshot, or the local one when the remote fails.
func (f *Fallback) Read(ctx context.Context) (Snapshot, error) {
	snap, err := f.remote.Read(ctx)
	if err == nil {
		return snap, nil
	}
	f.logger.WarnContext(ctx, "remote store read failed, using local copy", "error", err)
	f.metrics.IncFallbackReads()
	return f.local.Read(ctx)
}

// Write delegates to the remote store; the local copy is never written.
func (f *Fallback) Write(ctx context.Context, content, sha, message string) (string, error) {
	return f.remote.Write(ctx, content, sha, message)
}
