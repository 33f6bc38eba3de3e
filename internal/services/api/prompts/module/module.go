// Package module wires prompts into the API using modkit
package module

import (
	"net/http"

	"murmur/internal/core/policy"
	modkit "murmur/internal/modkit"
	"murmur/internal/modkit/httpkit"
	str "murmur/internal/platform/strings"
	promptshttp "murmur/internal/services/api/prompts/http"
	promptsrepo "murmur/internal/services/api/prompts/repo"
	promptssvc "murmur/internal/services/api/prompts/service"
)

// Module implements the prompts module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc promptssvc.Service
}

// New constructs the prompts module
func New(deps modkit.Deps, pack *policy.Pack, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("prompts"),
		modkit.WithPrefix("/prompts"),
	}, opts...)...)

	svc := promptssvc.New(deps.PG, promptsrepo.NewPG(), pack)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Prompts: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		promptshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
