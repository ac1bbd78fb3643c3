// Package syncmap offers a lightweight, generic, concurrency-safe map that
// remembers insertion order. It backs the hook registry, the handler catalog
// and container bindings where lookups are frequent and writes are rare.
package syncmap
