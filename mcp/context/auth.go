package context

import (
	"context"

	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp/client/auth/transport"
)

type identityKey string

// IdentityKey stores the authenticated caller.
var IdentityKey = identityKey("identity")

func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, transport.ContextAuthTokenKey, token)
}

func AuthToken(ctx context.Context) (string, bool) {
	ret := ctx.Value(transport.ContextAuthTokenKey)
	if ret == nil {
		return "", false
	}
	token, ok := ret.(string)
	return token, ok && token != ""
}

// WithIdentity stores the caller identity.
func WithIdentity(ctx context.Context, identity *authz.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// Identity returns the caller identity stored by WithIdentity.
func Identity(ctx context.Context) (*authz.Identity, bool) {
	ret, ok := ctx.Value(IdentityKey).(*authz.Identity)
	return ret, ok && ret != nil
}
