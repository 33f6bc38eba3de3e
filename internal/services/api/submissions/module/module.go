// Package module wires submissions into the API using modkit
package module

import (
	"net/http"

	"murmur/internal/adapters/classifier"
	"murmur/internal/adapters/speech"
	"murmur/internal/core/scan"
	modkit "murmur/internal/modkit"
	"murmur/internal/modkit/httpkit"
	str "murmur/internal/platform/strings"
	promptdomain "murmur/internal/services/api/prompts/domain"
	subhttp "murmur/internal/services/api/submissions/http"
	subrepo "murmur/internal/services/api/submissions/repo"
	subsvc "murmur/internal/services/api/submissions/service"
)

// Collaborators are the cross-module and adapter dependencies
type Collaborators struct {
	Prompts     promptdomain.ServicePort
	Transcriber speech.Transcriber
	Classifier  classifier.Classifier
	Scanner     *scan.Scanner
}

// Module implements the submissions module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc subsvc.Service
}

// New constructs the submissions module
func New(deps modkit.Deps, col Collaborators, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("submissions"),
		modkit.WithPrefix("/submissions"),
	}, opts...)...)

	svc := subsvc.New(subsvc.Deps{
		DB:          deps.PG,
		Binder:      subrepo.NewPG(),
		Prompts:     col.Prompts,
		Transcriber: col.Transcriber,
		Classifier:  col.Classifier,
		Scanner:     col.Scanner,
		Bus:         deps.Bus,
		Log:         deps.Log,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Submissions: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		subhttp.Register(r, m.svc)
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
