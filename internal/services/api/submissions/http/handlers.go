// Package http provides http transport for submissions
package http

import (
	"errors"
	stdhttp "net/http"

	"murmur/internal/modkit/httpkit"
	perr "murmur/internal/platform/errors"
	pnet "murmur/internal/platform/net"
	phttp "murmur/internal/platform/net/http"
	"murmur/internal/services/api/submissions/domain"
	svc "murmur/internal/services/api/submissions/service"
)

// Register mounts submission endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Post("/", httpkit.JSON(h.submit))
}

type handlers struct{ svc svc.Service }

// rejectedData is the extra payload on a rejection envelope
type rejectedData struct {
	Reason    string   `json:"reason"`
	Flags     []string `json:"flags"`
	Escalated bool     `json:"escalated"`
}

func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	out, err := h.svc.Submit(r.Context(), in)
	if err == nil {
		return out, nil
	}

	// rejections carry reason and escalation alongside the error envelope
	var rej *domain.Rejection
	if errors.As(err, &rej) {
		status := stdhttp.StatusBadRequest
		return phttp.Response{Status: status, Body: phttp.Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			Code:       perr.ErrorCodeRejected,
			Error:      "Content not approved",
			RequestID:  pnet.RequestID(r.Context()),
			Data: rejectedData{
				Reason:    rej.Reason,
				Flags:     rej.Flags,
				Escalated: rej.Escalated,
			},
		}}, nil
	}
	return nil, err
}
