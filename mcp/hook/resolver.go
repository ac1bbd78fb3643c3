package hook

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/viant/mcp-registry/mcp/container"
)

// Resolver finds the hook for a binding: first in the request scope, then in
// the registry.
type Resolver struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewResolver creates a resolver
func NewResolver(registry *Registry, logger zerolog.Logger) *Resolver {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Resolver{registry: registry, logger: logger}
}

// Resolve returns the hook or nil. A missing binding is logged and is not an
// error.
func (r *Resolver) Resolve(ctx context.Context, scope *container.Scope, binding *Binding) Func {
	if binding == nil || binding.Key == "" {
		return nil
	}
	if scope != nil {
		value, found, err := scope.Lookup(ctx, binding.Key)
		switch {
		case err != nil:
			r.logger.Warn().Err(err).Str("hook", binding.Key).Msg("failed to resolve hook from scope")
		case found:
			if fn := asFunc(value); fn != nil {
				return fn
			}
			r.logger.Warn().Str("hook", binding.Key).Msgf("binding is %T, not a hook", value)
		}
	}
	if fn, ok := r.registry.Lookup(binding.Key); ok {
		return fn
	}
	r.logger.Warn().Str("hook", binding.Key).Msg("hook not found")
	return nil
}

func asFunc(value interface{}) Func {
	switch actual := value.(type) {
	case Func:
		return actual
	case func(context.Context, *Context) (*Context, error):
		return actual
	}
	return nil
}
