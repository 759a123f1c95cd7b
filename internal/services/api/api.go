// Package api composes the overlay modules into the HTTP API and the
// content pipeline hook registry
package api

import (
	"studyhall/internal/platform/config"
	"studyhall/internal/platform/logger"
	phttp "studyhall/internal/platform/net/http"
	"studyhall/internal/platform/store"

	"studyhall/internal/modkit"
	"studyhall/internal/modkit/hookkit"
	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/modkit/module"

	anonmod "studyhall/internal/services/anonymity/module"
	metamod "studyhall/internal/services/api/meta/module"
	endorsemod "studyhall/internal/services/endorsement/module"
	forummod "studyhall/internal/services/forum/module"
	notifymod "studyhall/internal/services/notify/module"
	resolutionmod "studyhall/internal/services/resolution/module"
	rolesmod "studyhall/internal/services/roles/module"
	viewsmod "studyhall/internal/services/views/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger logger.Logger
}

// Mount mounts the API service onto the given router and returns the
// content pipeline hook registry with every overlay filter attached
func Mount(r phttp.Router, opt Options) *hookkit.Registry {
	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		RD:  opt.Store.RD,
	}

	// leaf modules first, their ports feed everything above
	forumMod := forummod.New(deps)
	reader := module.MustPortsOf[forummod.Ports](forumMod).Reader

	rolesMod := rolesmod.New(deps)
	resolver := module.MustPortsOf[rolesmod.Ports](rolesMod).Resolver

	notifyMod := notifymod.New(deps)
	notifier := module.MustPortsOf[notifymod.Ports](notifyMod).Notifier

	resolutionMod := resolutionmod.New(deps, resolver)
	state := module.MustPortsOf[resolutionmod.Ports](resolutionMod).State

	endorseMod := endorsemod.New(deps, resolver, reader, notifier)
	endorse := module.MustPortsOf[endorsemod.Ports](endorseMod).Manager

	viewsMod := viewsmod.New(deps, resolver, reader)
	anonMod := anonmod.New(deps, resolver)
	anon := module.MustPortsOf[anonmod.Ports](anonMod).Filter

	mods := []module.Module{
		metamod.New(deps),
		forumMod,
		rolesMod,
		notifyMod,
		resolutionMod,
		endorseMod,
		viewsMod,
		anonMod,
	}

	// versioned API with a common middleware stack; caller identity comes
	// from the forum front-end, resolved before any handler runs
	mw := append(httpkit.CommonStack(), httpkit.Auth(HeaderIdentity()))
	httpkit.MountAPIV1(r, mw, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})

	return attachHooks(opt.Logger, state, endorse, anon)
}
