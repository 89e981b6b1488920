// Package httptransport assembles the public router: operational endpoints at
// the top level, domain routes mounted by their handlers.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	commithandler "taproom/internal/commit/handler"
	"taproom/internal/transport/http/shared"
)

// NewRouter wires all public endpoints.
func NewRouter(commits *commithandler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	commits.Register(r)
	return r
}
