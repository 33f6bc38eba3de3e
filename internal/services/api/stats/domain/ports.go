package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Overview returns the current activity snapshot
	Overview(ctx context.Context) (Overview, error)
}
