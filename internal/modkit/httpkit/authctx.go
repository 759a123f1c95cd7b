package httpkit

import (
	"net/http"

	perrs "studyhall/internal/platform/errors"
	pnet "studyhall/internal/platform/net"
)

// User returns the calling user id from the request context
// guests carry uid 0 and are rejected here; operations that allow
// guests should read pnet.UserID directly
func User(r *http.Request) (int64, error) {
	uid := pnet.UserID(r.Context())
	if uid <= 0 {
		return 0, perrs.Unauthorizedf("not logged in")
	}
	return uid, nil
}

// MustUser returns the calling user id or panics
// only use on routes where the handler already requires a user
func MustUser(r *http.Request) int64 {
	uid, err := User(r)
	if err != nil {
		panic(err)
	}
	return uid
}
