// Package module wires resolution into the API using modkit
package module

import (
	"net/http"

	"studyhall/internal/modkit"
	"studyhall/internal/modkit/httpkit"
	str "studyhall/internal/platform/strings"
	"studyhall/internal/services/resolution/domain"
	resolutionhttp "studyhall/internal/services/resolution/http"
	"studyhall/internal/services/resolution/repo"
	"studyhall/internal/services/resolution/service"
	roles "studyhall/internal/services/roles/domain"
)

// Ports exposed by the resolution module
type Ports struct {
	State domain.StatePort
}

// Module implements the resolution module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs a resolution module with the provided dependencies and options
func New(deps modkit.Deps, resolver roles.ResolverPort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("resolution"), modkit.WithPrefix("/resolution"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := service.New(repo.NewRD(deps.RD), resolver, service.Config{FeedbackCID: o.FeedbackCID})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports:     Ports{State: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		resolutionhttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
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

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
