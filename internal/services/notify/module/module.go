// Package module wires notification dispatch as a ports-only module
package module

import (
	"studyhall/internal/modkit"
	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/services/notify/domain"
	"studyhall/internal/services/notify/repo"
	"studyhall/internal/services/notify/service"
)

// Ports exposed by the notify module
type Ports struct {
	Notifier domain.NotifierPort
}

// Module implements the notify module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the notify module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG())
	m := &Module{deps: deps}
	m.ports = Ports{Notifier: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "notify" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; delivery transport is external
func (m *Module) MountRoutes(r httpkit.Router) {}
