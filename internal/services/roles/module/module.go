// Package module wires the role resolver as a ports-only module
package module

import (
	"studyhall/internal/modkit"
	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/services/roles/domain"
	"studyhall/internal/services/roles/repo"
	"studyhall/internal/services/roles/service"
)

// Ports exposed by the roles module
type Ports struct {
	Resolver domain.ResolverPort
}

// Module implements the roles module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the roles module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	svc := service.New(deps.PG, repo.NewPG(), service.Config{TAGroup: opts.TAGroup})

	m := &Module{deps: deps}
	m.ports = Ports{Resolver: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "roles" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; capability checks have no routes
func (m *Module) MountRoutes(r httpkit.Router) {}
