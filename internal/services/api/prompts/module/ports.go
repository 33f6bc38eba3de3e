package module

import "murmur/internal/services/api/prompts/domain"

// Ports exposes the prompt service to other modules
type Ports struct {
	Prompts domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
