// Package hookkit provides an explicit filter registry for forum events
//
// modules attach typed filters to named events like "post.create" and the
// composition root runs them in attach order, threading the payload through
// each filter. There is no implicit discovery; every attachment happens in
// wiring code so the chain for any event is readable in one place.
package hookkit

import (
	"context"
	"fmt"
	"sync"

	"studyhall/internal/platform/logger"
)

// Filter transforms a payload for one event
// returning an error aborts the chain unless the filter is wrapped in Soft
type Filter[T any] func(ctx context.Context, v T) (T, error)

// untyped is the erased form stored in the registry
type untyped func(ctx context.Context, v any) (any, error)

// Registry holds named filter chains
// safe for concurrent Attach and Run, though attachment normally happens
// once during bootstrap
type Registry struct {
	mu    sync.RWMutex
	hooks map[string][]untyped
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{hooks: map[string][]untyped{}}
}

// Attach appends a typed filter to the chain for name
func Attach[T any](r *Registry, name string, f Filter[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[name] = append(r.hooks[name], func(ctx context.Context, v any) (any, error) {
		in, ok := v.(T)
		if !ok {
			return v, fmt.Errorf("hookkit: %s: payload is %T not %T", name, v, in)
		}
		return f(ctx, in)
	})
}

// Run threads v through every filter attached to name in attach order
// an unknown name is not an error; the payload passes through unchanged
func Run[T any](ctx context.Context, r *Registry, name string, v T) (T, error) {
	r.mu.RLock()
	chain := r.hooks[name]
	r.mu.RUnlock()

	cur := any(v)
	for _, f := range chain {
		next, err := f(ctx, cur)
		if err != nil {
			out, _ := cur.(T)
			return out, err
		}
		cur = next
	}
	out, ok := cur.(T)
	if !ok {
		return v, fmt.Errorf("hookkit: %s: chain produced %T", name, cur)
	}
	return out, nil
}

// Len reports how many filters are attached to name
func (r *Registry) Len(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[name])
}

// Soft wraps a filter so a failure never aborts the chain
// errors and panics are logged and the input payload flows on unchanged
func Soft[T any](log logger.Logger, name string, f Filter[T]) Filter[T] {
	return func(ctx context.Context, v T) (out T, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Warn().Str("hook", name).Any("panic", rec).Msg("hook panicked, passing payload through")
				out, err = v, nil
			}
		}()
		got, ferr := f(ctx, v)
		if ferr != nil {
			log.Warn().Str("hook", name).Err(ferr).Msg("hook failed, passing payload through")
			return v, nil
		}
		return got, nil
	}
}
