// Package http provides http transport for playback
package http

import (
	stdhttp "net/http"

	"murmur/internal/modkit/httpkit"
	svc "murmur/internal/services/api/responses/service"
)

// Register mounts playback endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/random", h.random)
}

type handlers struct{ svc svc.Service }

func (h *handlers) random(r *stdhttp.Request) (any, error) {
	return h.svc.Random(r.Context(), r.URL.Query().Get("prompt_id"))
}
