// Package module wires playback into the API using modkit
package module

import (
	"net/http"

	modkit "murmur/internal/modkit"
	"murmur/internal/modkit/httpkit"
	str "murmur/internal/platform/strings"
	responseshttp "murmur/internal/services/api/responses/http"
	responsesrepo "murmur/internal/services/api/responses/repo"
	responsessvc "murmur/internal/services/api/responses/service"
)

// Module implements the responses module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc responsessvc.Service
}

// New constructs the responses module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("responses"),
		modkit.WithPrefix("/responses"),
	}, opts...)...)

	svc := responsessvc.New(deps.PG, responsesrepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Responses: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		responseshttp.Register(r, m.svc)
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
