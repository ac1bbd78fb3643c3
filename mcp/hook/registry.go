package hook

import (
	"github.com/viant/mcp-registry/internal/syncmap"
)

// Registry maps binding keys to hooks.
type Registry struct {
	hooks *syncmap.Map[Func]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{hooks: syncmap.New[Func]()}
}

// Register binds fn under key, replacing a previous hook.
func (r *Registry) Register(key string, fn Func) {
	r.hooks.Set(key, fn)
}

// Lookup returns the hook for key; ok is false when nothing is registered.
func (r *Registry) Lookup(key string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.hooks.Lookup(key)
	return fn, ok && fn != nil
}

// Keys returns registered keys in registration order
func (r *Registry) Keys() []string {
	return r.hooks.Keys()
}
