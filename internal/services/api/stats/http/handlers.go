// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"

	"murmur/internal/modkit/httpkit"
	svc "murmur/internal/services/api/stats/service"
)

// Register mounts the stats endpoint on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.overview)
}

type handlers struct{ svc svc.Service }

func (h *handlers) overview(r *stdhttp.Request) (any, error) {
	return h.svc.Overview(r.Context())
}
