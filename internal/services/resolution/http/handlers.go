// Package http provides the resolution transport surface
package http

import (
	stdhttp "net/http"

	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/services/resolution/domain"
)

// Register mounts resolution endpoints on the given router
func Register(r httpkit.Router, s domain.StatePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ToggleInput](r, "/toggle", h.toggle)
}

type handlers struct{ svc domain.StatePort }

func (h *handlers) toggle(r *stdhttp.Request, in domain.ToggleInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Toggle(r.Context(), uid, in.Tid)
}
