package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/container"
)

func TestValues(t *testing.T) {
	ctx := context.Background()
	_, ok := AuthToken(ctx)
	assert.False(t, ok)
	_, ok = Identity(ctx)
	assert.False(t, ok)
	_, ok = Scope(ctx)
	assert.False(t, ok)

	identity := &authz.Identity{ID: "alice"}
	scope := container.New()
	ctx = WithScope(WithIdentity(WithAuthToken(ctx, "abc"), identity), scope)

	token, ok := AuthToken(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
	actual, ok := Identity(ctx)
	assert.True(t, ok)
	assert.Same(t, identity, actual)
	actualScope, ok := Scope(ctx)
	assert.True(t, ok)
	assert.Same(t, scope, actualScope)
}
