package api

import (
	"net/http/httptest"
	"testing"

	perr "studyhall/internal/platform/errors"
)

func TestHeaderIdentity_Parse(t *testing.T) {
	t.Parallel()
	p := HeaderIdentity()

	cases := []struct {
		name    string
		header  string
		wantUID int64
		wantErr bool
	}{
		{"absent means guest", "", 0, false},
		{"plain uid", "42", 42, false},
		{"padded uid", "  7 ", 7, false},
		{"zero is guest", "0", 0, false},
		{"negative rejected", "-3", 0, true},
		{"garbage rejected", "abc", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/v1/resolution/toggle", nil)
			if tc.header != "" {
				r.Header.Set(identityHeader, tc.header)
			}
			uid, err := p.Parse(r)
			if tc.wantErr {
				if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
					t.Fatalf("want unauthorized, got uid=%d err=%v", uid, err)
				}
				return
			}
			if err != nil || uid != tc.wantUID {
				t.Fatalf("uid=%d err=%v, want %d", uid, err, tc.wantUID)
			}
		})
	}
}
