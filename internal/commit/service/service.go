// Package service implements the commit lifecycle: submission of pending
// records, moderation approval, and listing. All durable state lives in the
// backing file behind the logstore adapters; nothing is shared across
// requests in-process.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"taproom/internal/audit"
	"taproom/internal/logstore"
	"taproom/internal/platform/metrics"
	"taproom/internal/platform/middleware"
	"taproom/internal/record"
	dErrors "taproom/pkg/domain-errors"

	"taproom/internal/commit/models"
)

// Service orchestrates the commit, approval, and query flows over the
// backing file. store is the read-write remote; reader may add a local
// fallback and is used for listings only (its snapshots can lack a version
// token, so they must never seed a write).
type Service struct {
	store   logstore.Store
	reader  logstore.Store
	secret  string
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher

	now     func() time.Time
	newHash func() string

	listGroup singleflight.Group
}

// Option customizes a Service, mainly for tests.
type Option func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHashFunc overrides the provisional hash generator.
func WithHashFunc(fn func() string) Option {
	return func(s *Service) { s.newHash = fn }
}

// New builds a Service. metrics may be nil; publisher may be a Nop.
func New(store, reader logstore.Store, secret string, logger *slog.Logger, m *metrics.Metrics, publisher audit.Publisher, opts ...Option) *Service {
	s := &Service{
		store:   store,
		reader:  reader,
		secret:  secret,
		logger:  logger,
		metrics: m,
		audit:   publisher,
		now:     time.Now,
		newHash: randomHash,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomHash derives a 7-character alphanumeric token from a uuid.
func randomHash() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:record.HashLen]
}

// Submit validates the request, appends a pending record to the backing
// file, and returns the record. Persistence is best-effort: on any store
// failure the visitor still gets a record with the provisional hash and
// pending status; the failure is logged and counted, never surfaced.
func (s *Service) Submit(ctx context.Context, req models.SubmitRequest) (record.Record, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return record.Record{}, dErrors.New(dErrors.CodeBadRequest, "El mensaje del commit es requerido.")
	}
	if runes := []rune(message); len(runes) > record.MaxMessageLen {
		message = string(runes[:record.MaxMessageLen])
	}

	alias := strings.TrimSpace(req.Alias)
	if alias == "" {
		alias = record.DefaultAlias
	}

	rec := record.Record{
		Hash:      s.newHash(),
		Tap:       record.ParseTap(req.Beer),
		Alias:     alias,
		Message:   message,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
		Status:    record.StatusPending,
	}

	snap, err := s.store.Read(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "backing file read failed, returning unpersisted record",
			"hash", rec.Hash,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		s.metrics.IncStoreWriteFailures()
		return rec, nil
	}

	content := snap.Content
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += record.Encode(rec) + "\n"

	assigned, err := s.store.Write(ctx, content, snap.SHA, "taproom: nuevo commit de "+alias)
	if err != nil {
		s.logger.ErrorContext(ctx, "backing file write failed, returning unpersisted record",
			"hash", rec.Hash,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		s.metrics.IncStoreWriteFailures()
		return rec, nil
	}

	// Adopt the store-assigned change id as the public hash when it is long
	// enough. The persisted line keeps the provisional hash: approval happens
	// through the listing, which reads the line back.
	if len(assigned) >= record.HashLen {
		rec.Hash = assigned[:record.HashLen]
	}

	s.metrics.IncCommitsSubmitted()
	s.emit(ctx, audit.Event{
		Action: audit.ActionCommitSubmitted,
		Hash:   rec.Hash,
		Alias:  rec.Alias,
		Tap:    string(rec.Tap),
	})
	return rec, nil
}

// Approve transitions exactly one pending line to approved. The write is
// conditioned on the version token read here; a conflicting concurrent write
// fails the operation and the caller must resubmit.
func (s *Service) Approve(ctx context.Context, hash, secret string) (string, error) {
	if secret != s.secret {
		return "", dErrors.New(dErrors.CodeForbidden, "Credenciales inválidas.")
	}
	if len(hash) < record.HashLen {
		return "", dErrors.New(dErrors.CodeBadRequest, "Hash inválido.")
	}

	snap, err := s.store.Read(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "backing file read failed during approval",
			"hash", hash,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		return "", dErrors.New(dErrors.CodeInternal, "Error interno del servidor.")
	}

	lines := strings.Split(snap.Content, "\n")
	found := false
	for i, line := range lines {
		rec, ok := record.Decode(line)
		if !ok || rec.Hash != hash || rec.Status != record.StatusPending {
			continue
		}
		lines[i] = record.ApproveLine(line)
		found = true
		break
	}
	if !found {
		return "", dErrors.New(dErrors.CodeNotFound, "Commit pendiente no encontrado.")
	}

	if _, err := s.store.Write(ctx, strings.Join(lines, "\n"), snap.SHA, "taproom: aprobar "+hash); err != nil {
		s.logger.ErrorContext(ctx, "backing file write failed during approval",
			"hash", hash,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		s.metrics.IncStoreWriteFailures()
		return "", dErrors.New(dErrors.CodeInternal, "Error interno del servidor.")
	}

	s.metrics.IncCommitsApproved()
	s.emit(ctx, audit.Event{
		Action: audit.ActionCommitApproved,
		Hash:   hash,
	})
	return hash, nil
}

// List returns every decodable record, newest first. It never errors:
// any read failure yields an empty list. Concurrent listings share one
// underlying read via singleflight.
func (s *Service) List(ctx context.Context) []record.Record {
	v, _, _ := s.listGroup.Do("list", func() (any, error) {
		snap, err := s.reader.Read(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "listing read failed, returning empty log", "error", err)
			return []record.Record{}, nil
		}
		return record.DecodeLog(snap.Content), nil
	})
	return v.([]record.Record)
}

// emit publishes an audit event; failures are logged only.
func (s *Service) emit(ctx context.Context, e audit.Event) {
	if s.audit == nil {
		return
	}
	e.RequestID = middleware.GetRequestID(ctx)
	e.At = s.now().UTC()
	if err := s.audit.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", e.Action, "error", err)
	}
}
