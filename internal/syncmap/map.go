package syncmap

import "sync"

// Map is a thread-safe generic map that keeps keys in insertion order.
type Map[T any] struct {
	mux  sync.RWMutex
	m    map[string]T
	keys []string
}

// New creates a new instance of Map
func New[T any]() *Map[T] {
	return &Map[T]{
		m: make(map[string]T),
	}
}

// Lookup retrieves an item by name and reports its presence
func (r *Map[T]) Lookup(name string) (T, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	v, ok := r.m[name]
	return v, ok
}

// Set adds or updates an item by name. Updating keeps the original position.
func (r *Map[T]) Set(name string, value T) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.m[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.m[name] = value
}

// PutIfAbsent stores value only when name is not taken yet; it reports
// whether the value was stored.
func (r *Map[T]) PutIfAbsent(name string, value T) bool {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.m[name]; ok {
		return false
	}
	r.keys = append(r.keys, name)
	r.m[name] = value
	return true
}

// Keys returns keys in insertion order
func (r *Map[T]) Keys() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return append([]string(nil), r.keys...)
}

// List returns a slice of all items in insertion order
func (r *Map[T]) List() []T {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]T, 0, len(r.keys))
	for _, k := range r.keys {
		ret = append(ret, r.m[k])
	}
	return ret
}
