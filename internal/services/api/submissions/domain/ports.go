package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Submit runs the moderation pipeline over one recording.
	// A rejected submission returns *Rejection as the error
	Submit(ctx context.Context, in SubmitInput) (Accepted, error)
}
