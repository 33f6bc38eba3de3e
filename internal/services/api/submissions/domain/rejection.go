package domain

import perr "murmur/internal/platform/errors"

// Rejection is the moderation outcome for a submission that was not approved.
// It is an expected business result, the transport layer maps it to a
// rejected-code envelope carrying reason and escalation
type Rejection struct {
	Reason    string
	Flags     []string
	Escalated bool
}

// Error implements the error interface
func (r *Rejection) Error() string { return "content not approved: " + r.Reason }

// Code lets the platform error mapper pick the right status
func (r *Rejection) Code() perr.ErrorCode { return perr.ErrorCodeRejected }
