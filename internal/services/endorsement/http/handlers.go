// Package http provides the endorsement transport surface
package http

import (
	stdhttp "net/http"

	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/services/endorsement/domain"
)

// Register mounts endorsement endpoints on the given router
func Register(r httpkit.Router, s domain.ManagerPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SetInput](r, "/set", h.set)
}

type handlers struct{ svc domain.ManagerPort }

func (h *handlers) set(r *stdhttp.Request, in domain.SetInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Set(r.Context(), uid, in.Pid, *in.Grant)
}
