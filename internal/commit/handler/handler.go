// Package handler is the HTTP layer of the commit API. It decodes requests,
// delegates to the service, and translates domain errors; business rules live
// in the service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"taproom/internal/commit/models"
	"taproom/internal/platform/metrics"
	"taproom/internal/platform/middleware"
	"taproom/internal/ratelimit"
	"taproom/internal/record"
	"taproom/internal/transport/http/shared"
	dErrors "taproom/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mocks.go -package=mocks Service

// Service defines the commit operations the HTTP layer consumes.
type Service interface {
	Submit(ctx context.Context, req models.SubmitRequest) (record.Record, error)
	Approve(ctx context.Context, hash, secret string) (string, error)
	List(ctx context.Context) []record.Record
}

// Handler handles the commit endpoints.
type Handler struct {
	logger  *slog.Logger
	commits Service
	limiter *ratelimit.Limiter
	metrics *metrics.Metrics
}

// New creates a commit Handler. limiter and metrics may be nil.
func New(commits Service, limiter *ratelimit.Limiter, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		commits: commits,
		limiter: limiter,
		metrics: m,
	}
}

// Register mounts the commit routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	commitRouter := chi.NewRouter()
	commitRouter.Use(middleware.Recovery(h.logger))
	commitRouter.Use(middleware.RequestID)
	commitRouter.Use(middleware.Logger(h.logger))
	commitRouter.Use(middleware.Timeout(30 * time.Second))
	commitRouter.Use(middleware.ContentTypeJSON)
	commitRouter.Use(middleware.Latency(h.metrics))
	commitRouter.Post("/api/commits", h.handleSubmit)
	commitRouter.Get("/api/commits", h.handleList)
	commitRouter.Post("/api/commits/approve", h.handleApprove)

	r.Mount("/", commitRouter)
}

// handleSubmit accepts a new commit message and answers with the pending
// record, even when persistence degraded (the service masks store failures).
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid submit request body",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Cuerpo de la solicitud inválido."))
		return
	}

	rec, err := h.commits.Submit(ctx, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, models.NewSubmitResponse(rec))
}

// handleApprove transitions a pending record to approved.
func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Cuerpo de la solicitud inválido."))
		return
	}
	if req.Hash == "" || req.Secret == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Hash y secret son requeridos."))
		return
	}

	allowed, err := h.limiter.Allow(ctx, clientIP(r))
	if err != nil {
		// Fail open: the limiter backend being down must not block moderation.
		h.logger.WarnContext(ctx, "rate limiter unavailable",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	}
	if !allowed {
		shared.WriteError(w, dErrors.New(dErrors.CodeTooManyRequests, "Demasiados intentos. Intenta de nuevo más tarde."))
		return
	}

	hash, err := h.commits.Approve(ctx, req.Hash, req.Secret)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeForbidden) {
			h.logger.WarnContext(ctx, "approval rejected: bad credential",
				"hash", req.Hash,
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, models.ApproveResponse{Success: true, Hash: hash})
}

// handleList returns every record, newest first. It always answers 200: a
// degraded store yields an empty list, never an error.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	recs := h.commits.List(r.Context())
	shared.WriteJSON(w, http.StatusOK, models.NewRecordViews(recs))
}

// clientIP keys the rate limiter: first X-Forwarded-For hop when present,
// else the connection's remote host.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
