// Package module wires the anonymity filter as a ports-only module.
// The filter has no transport surface of its own, it is consumed through
// the content pipeline hooks
package module

import (
	"studyhall/internal/modkit"
	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/services/anonymity/domain"
	"studyhall/internal/services/anonymity/repo"
	"studyhall/internal/services/anonymity/service"
	roles "studyhall/internal/services/roles/domain"
)

// Ports exposed by the anonymity module
type Ports struct {
	Filter domain.FilterPort
}

// Module implements the anonymity module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the anonymity module
func New(deps modkit.Deps, resolver roles.ResolverPort) *Module {
	svc := service.New(repo.NewRD(deps.RD), resolver)
	m := &Module{deps: deps}
	m.ports = Ports{Filter: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "anonymity" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; the filter has no routes
func (m *Module) MountRoutes(r httpkit.Router) {}
