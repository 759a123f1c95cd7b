// Package http provides the view tracking transport surface
package http

import (
	stdhttp "net/http"

	"studyhall/internal/modkit/httpkit"
	"studyhall/internal/services/views/domain"
)

// Register mounts view tracking endpoints on the given router
func Register(r httpkit.Router, s domain.TrackerPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LogInput](r, "/log", h.log)
	httpkit.PostJSON[domain.PidInput](r, "/list", h.list)
	httpkit.PostJSON[domain.PidInput](r, "/count", h.count)
}

type handlers struct{ svc domain.TrackerPort }

func (h *handlers) log(r *stdhttp.Request, in domain.LogInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Log(r.Context(), uid, in.Pid)
}

func (h *handlers) list(r *stdhttp.Request, in domain.PidInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Viewers(r.Context(), uid, in.Pid)
}

func (h *handlers) count(r *stdhttp.Request, in domain.PidInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	n, err := h.svc.Count(r.Context(), uid, in.Pid)
	if err != nil {
		return nil, err
	}
	return map[string]int64{"count": n}, nil
}
