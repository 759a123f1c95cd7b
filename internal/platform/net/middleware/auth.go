package middleware

import (
	"net/http"

	pnet "studyhall/internal/platform/net"
)

// AuthPort is a tiny seam the identity front-end implements
type AuthPort interface {
	// Parse returns the forum uid from the request or an error
	// uid 0 with nil error means an unauthenticated (guest) request
	Parse(r *http.Request) (uid int64, err error)
}

// Auth resolves the caller identity and stores it on the request context
// Operations decide themselves whether a guest caller is acceptable
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}
