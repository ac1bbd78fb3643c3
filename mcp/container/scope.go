// Package container provides the request-scoped object container used to
// resolve handler instances, hooks and authorization state. Scopes form a
// chain; each scope is released exactly once.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/viant/mcp-registry/internal/syncmap"
)

var (
	// ErrNotFound is returned when no scope in the chain binds the key.
	ErrNotFound = errors.New("binding not found")
	// ErrClosed is returned when resolving from a released scope.
	ErrClosed = errors.New("scope closed")
)

// Provider creates a value on demand. The value is cached in the scope that
// requested it and closed with that scope when it implements io.Closer.
type Provider func(ctx context.Context, scope *Scope) (interface{}, error)

type binding struct {
	value    interface{}
	provider Provider
}

// Scope is a node in the container chain.
type Scope struct {
	parent   *Scope
	bindings *syncmap.Map[*binding]
	cache    *syncmap.Map[interface{}]

	mux      sync.Mutex
	closed   bool
	releases []func() error
	once     sync.Once
	err      error
}

// New creates a root scope
func New() *Scope {
	return &Scope{
		bindings: syncmap.New[*binding](),
		cache:    syncmap.New[interface{}](),
	}
}

// Child creates a scope resolving through s.
func (s *Scope) Child() *Scope {
	ret := New()
	ret.parent = s
	return ret
}

// Parent returns the parent scope, nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Bind binds a constant value to key.
func (s *Scope) Bind(key string, value interface{}) {
	s.bindings.Set(key, &binding{value: value})
}

// BindProvider binds a provider to key.
func (s *Scope) BindProvider(key string, provider Provider) {
	s.bindings.Set(key, &binding{provider: provider})
}

// IsBound reports whether key is bound in s or any ancestor.
func (s *Scope) IsBound(key string) bool {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.bindings.Lookup(key); ok {
			return true
		}
	}
	return false
}

// Lookup resolves key through the chain. found is false when nothing binds
// the key; err reports provider or scope failures.
func (s *Scope) Lookup(ctx context.Context, key string) (value interface{}, found bool, err error) {
	if s.isClosed() {
		return nil, false, ErrClosed
	}
	for scope := s; scope != nil; scope = scope.parent {
		b, ok := scope.bindings.Lookup(key)
		if !ok {
			continue
		}
		if b.provider == nil {
			return b.value, true, nil
		}
		if cached, ok := s.cache.Lookup(key); ok {
			return cached, true, nil
		}
		value, err := b.provider(ctx, s)
		if err != nil {
			return nil, true, fmt.Errorf("failed to provide %q: %w", key, err)
		}
		s.cache.Set(key, value)
		if closer, ok := value.(io.Closer); ok {
			s.OnClose(closer.Close)
		}
		return value, true, nil
	}
	return nil, false, nil
}

// Get resolves key or returns ErrNotFound.
func (s *Scope) Get(ctx context.Context, key string) (interface{}, error) {
	value, found, err := s.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// OnClose registers a release callback run when the scope closes. Callbacks
// registered on a closed scope run immediately.
func (s *Scope) OnClose(fn func() error) {
	s.mux.Lock()
	if !s.closed {
		s.releases = append(s.releases, fn)
		s.mux.Unlock()
		return
	}
	s.mux.Unlock()
	_ = fn()
}

// Close releases the scope once, in reverse registration order. Subsequent
// calls return the first result.
func (s *Scope) Close() error {
	s.once.Do(func() {
		s.mux.Lock()
		s.closed = true
		releases := s.releases
		s.releases = nil
		s.mux.Unlock()
		var errs []error
		for i := len(releases) - 1; i >= 0; i-- {
			if err := releases[i](); err != nil {
				errs = append(errs, err)
			}
		}
		s.err = errors.Join(errs...)
	})
	return s.err
}

// Closed reports whether Close was called.
func (s *Scope) Closed() bool { return s.isClosed() }

func (s *Scope) isClosed() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.closed
}

// As resolves key and asserts the value type.
func As[T any](ctx context.Context, s *Scope, key string) (T, error) {
	var zero T
	value, err := s.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	ret, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("binding %q: expected %T, but had %T", key, zero, value)
	}
	return ret, nil
}
