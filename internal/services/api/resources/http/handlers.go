// Package http serves the static support resources payload
package http

import (
	stdhttp "net/http"

	"murmur/internal/core/policy"
	"murmur/internal/modkit/httpkit"
)

// Register mounts resource endpoints on the given router
func Register(r httpkit.Router, pack *policy.Pack) {
	h := &handlers{pack: pack}

	httpkit.Get(r, "/crisis", h.crisis)
}

type handlers struct{ pack *policy.Pack }

// crisisPayload matches the shape clients already consume
type crisisPayload struct {
	Resources []policy.CrisisResource `json:"resources"`
}

func (h *handlers) crisis(r *stdhttp.Request) (any, error) {
	return crisisPayload{Resources: h.pack.CrisisResources}, nil
}
