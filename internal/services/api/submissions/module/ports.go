package module

import "murmur/internal/services/api/submissions/domain"

// Ports exposes the submission pipeline to other modules
type Ports struct {
	Submissions domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
