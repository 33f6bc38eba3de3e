package module

import "murmur/internal/services/api/stats/domain"

// Ports exposes the stats service to other modules
type Ports struct {
	Stats domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
