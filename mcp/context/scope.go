package context

import (
	"context"

	"github.com/viant/mcp-registry/mcp/container"
)

type scopeKey string

// ScopeKey stores the request scope.
var ScopeKey = scopeKey("scope")

// WithScope stores the request scope.
func WithScope(ctx context.Context, scope *container.Scope) context.Context {
	return context.WithValue(ctx, ScopeKey, scope)
}

// Scope returns the request scope stored by WithScope.
func Scope(ctx context.Context) (*container.Scope, bool) {
	ret, ok := ctx.Value(ScopeKey).(*container.Scope)
	return ret, ok && ret != nil
}
