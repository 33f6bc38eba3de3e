package module

import "murmur/internal/services/api/responses/domain"

// Ports exposes the playback service to other modules
type Ports struct {
	Responses domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
