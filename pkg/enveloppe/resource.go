package enveloppe

import (
	"context"
	"sync"
)

// resource is a reload-capable state holder: one committed value, a loading
// flag, and the error from the last load. Every read sees the latest
// committed value; every write is a single atomic replacement.
type resource[T any] struct {
	mu      sync.Mutex
	value   T
	err     error
	loading bool
	pending bool
	fetch   func(ctx context.Context) (T, error)
}

func newResource[T any](fetch func(ctx context.Context) (T, error)) *resource[T] {
	return &resource[T]{fetch: fetch}
}

// Value returns the latest committed value
func (r *resource[T]) Value() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Loading reports whether a load is in flight
func (r *resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the error recorded by the last load, if any
func (r *resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Set commits a new value in a single replacement
func (r *resource[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
}

// Reload fetches a fresh value. A failed load keeps the stale value and
// records the error on the resource; callers triggering loads reactively
// read it through Err.
//
// A Reload requested while another load is in flight returns nil
// immediately but is not lost: the in-flight load re-runs fetch once it
// completes, so the committed value always reflects the state fetch
// observes after the last request.
func (r *resource[T]) Reload(ctx context.Context) error {
	r.mu.Lock()
	if r.loading {
		r.pending = true
		r.mu.Unlock()
		return nil
	}
	r.loading = true
	r.mu.Unlock()

	for {
		value, err := r.fetch(ctx)

		r.mu.Lock()
		r.err = err
		if err == nil {
			r.value = value
		}
		if r.pending {
			r.pending = false
			r.mu.Unlock()
			continue
		}
		r.loading = false
		r.mu.Unlock()
		return err
	}
}
