// Package http provides http transport for prompts
package http

import (
	stdhttp "net/http"
	"time"

	"murmur/internal/modkit/httpkit"
	"murmur/internal/services/api/prompts/domain"
	svc "murmur/internal/services/api/prompts/service"
)

// Register mounts prompt endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// today's prompt, lazily created
	httpkit.Get(r, "/current", h.current)
}

type handlers struct{ svc svc.Service }

func (h *handlers) current(r *stdhttp.Request) (any, error) {
	p, err := h.svc.Current(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.CurrentResponse{
		ID:        p.ID,
		Question:  p.Question,
		Date:      p.Date,
		ExpiresAt: p.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}
