package httpkit

import (
	"net/http"
	"testing"

	phttp "studyhall/internal/platform/net/http"
)

// fakeRouterSugar satisfies the platform Router surface we need here
// it records verb + path + handler for assertions
type fakeRouterSugar struct {
	recs []struct {
		verb string
		path string
		h    phttp.Handler
	}
}

func (f *fakeRouterSugar) Route(_ string, fn func(Router))          { fn(f) }
func (f *fakeRouterSugar) Group(fn func(Router))                    { fn(f) }
func (f *fakeRouterSugar) Use(_ ...func(http.Handler) http.Handler) {}
func (f *fakeRouterSugar) Mux() http.Handler                        { return http.NewServeMux() }
func (f *fakeRouterSugar) Handle(path string, h http.Handler)       { /* not used here */ }

func (f *fakeRouterSugar) record(verb, path string, h phttp.Handler) {
	f.recs = append(f.recs, struct {
		verb, path string
		h          phttp.Handler
	}{verb, path, h})
}

func (f *fakeRouterSugar) Get(path string, h phttp.Handler)    { f.record("GET", path, h) }
func (f *fakeRouterSugar) Post(path string, h phttp.Handler)   { f.record("POST", path, h) }
func (f *fakeRouterSugar) Put(path string, h phttp.Handler)    { f.record("PUT", path, h) }
func (f *fakeRouterSugar) Patch(path string, h phttp.Handler)  { f.record("PATCH", path, h) }
func (f *fakeRouterSugar) Delete(path string, h phttp.Handler) { f.record("DELETE", path, h) }

func TestPostJSON_MountsHandler(t *testing.T) {
	r := &fakeRouterSugar{}
	type req struct{ Tid int64 }
	PostJSON[req](r, "/toggle", func(_ *http.Request, _ req) (any, error) { return "ok", nil })

	if len(r.recs) != 1 {
		t.Fatalf("expected 1 registration, got %d", len(r.recs))
	}
	rec := r.recs[0]
	if rec.verb != "POST" || rec.path != "/toggle" {
		t.Fatalf("expected POST /toggle, got %s %s", rec.verb, rec.path)
	}
	if rec.h == nil {
		t.Fatalf("expected non-nil handler")
	}
}

func TestGet_MountsNoBodyHandler(t *testing.T) {
	r := &fakeRouterSugar{}
	Get(r, "/count", func(_ *http.Request) (any, error) { return 0, nil })

	if len(r.recs) != 1 {
		t.Fatalf("expected 1 registration, got %d", len(r.recs))
	}
	rec := r.recs[0]
	if rec.verb != "GET" || rec.path != "/count" {
		t.Fatalf("expected GET /count, got %s %s", rec.verb, rec.path)
	}
}

func TestMountAPIV1_PrefixesRoutes(t *testing.T) {
	r := &fakeRouterSugar{}
	called := false
	MountAPIV1(r, nil, func(api Router) {
		called = true
		Post(api, "/log", func(_ *http.Request) (any, error) { return nil, nil })
	})
	if !called {
		t.Fatalf("mount callback not invoked")
	}
	if len(r.recs) != 1 || r.recs[0].path != "/log" {
		t.Fatalf("expected registration under mounted router")
	}
}
