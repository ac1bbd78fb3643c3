package registry

import (
	"github.com/rs/zerolog"
	"github.com/viant/mcp-registry/mcp/hook"
	"github.com/viant/mcp-registry/mcp/schema"
)

// Option configures a Registry.
type Option func(r *Registry)

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithDeriver overrides the schema deriver
func WithDeriver(deriver schema.Deriver) Option {
	return func(r *Registry) {
		if deriver != nil {
			r.deriver = deriver
		}
	}
}

// WithHooks sets the hook registry consulted after the call scope
func WithHooks(hooks *hook.Registry) Option {
	return func(r *Registry) {
		r.hooks = hooks
	}
}

// WithObserver sets the call observer
func WithObserver(observer Observer) Option {
	return func(r *Registry) {
		if observer != nil {
			r.observer = observer
		}
	}
}
