package api

import (
	"net/http"
	"strconv"
	"strings"

	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/net/middleware"
)

// identityHeader carries the caller's forum uid, stamped by the forum
// front-end after it terminates the session. Absent means guest
const identityHeader = "X-Forum-Uid"

// HeaderIdentity returns the identity port backing the Auth middleware
func HeaderIdentity() middleware.AuthPort { return headerPort{} }

type headerPort struct{}

// Parse implements middleware.AuthPort
func (headerPort) Parse(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(identityHeader))
	if raw == "" {
		return 0, nil
	}
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || uid < 0 {
		return 0, perr.Unauthorizedf("invalid identity header")
	}
	return uid, nil
}
