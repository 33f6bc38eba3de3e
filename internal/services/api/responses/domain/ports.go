package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Random returns a uniformly random published response for the prompt,
	// or a not found error when the prompt has none
	Random(ctx context.Context, promptID string) (Playback, error)
}
