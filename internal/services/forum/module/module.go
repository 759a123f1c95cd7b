// Package module wires the content store reader as a ports-only module
package module

import (
	"studyhall/internal/modkit"
	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/services/forum/domain"
	"studyhall/internal/services/forum/repo"
	"studyhall/internal/services/forum/service"
)

// Ports exposed by the forum module
type Ports struct {
	Reader domain.ReaderPort
}

// Module implements the forum reader module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the forum module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG())
	m := &Module{deps: deps}
	m.ports = Ports{Reader: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "forum" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; the reader has no transport surface
func (m *Module) MountRoutes(r httpkit.Router) {}
