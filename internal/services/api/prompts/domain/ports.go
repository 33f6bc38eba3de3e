package domain

import (
	"context"
	"time"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Current returns today's prompt, creating it when absent
	Current(ctx context.Context) (Prompt, error)

	// Get returns the prompt with the given id or a not found error
	Get(ctx context.Context, id string) (Prompt, error)

	// EnsureFor creates the prompt for the given day when absent and returns it
	EnsureFor(ctx context.Context, day time.Time) (Prompt, error)
}
