// Package authz holds the authorization collaborator: declared permission
// requirements, caller identities, the authorizer call site and bearer token
// verification.
package authz

import (
	"context"
	"slices"
)

// Container keys used to inject authorization state into a call scope.
const (
	CurrentUserKey = "authentication.currentUser"
	AuthorizerKey  = "authorization.authorize"
	MetadataKey    = "authorization.metadata"
	ClassKey       = "authorization.class"
	MethodKey      = "authorization.method"
)

// Wildcard grants every permission.
const Wildcard = "*"

// Requirement lists permissions of which the caller needs at least one.
type Requirement struct {
	Permissions []string `yaml:"permissions" json:"permissions"`
}

// NewRequirement creates a requirement
func NewRequirement(permissions ...string) *Requirement {
	return &Requirement{Permissions: append([]string(nil), permissions...)}
}

// Identity is an authenticated caller.
type Identity struct {
	ID          string   `json:"id"`
	Permissions []string `json:"permissions,omitempty"`
}

// Anonymous returns an identity without a subject.
func Anonymous(permissions ...string) *Identity {
	return &Identity{Permissions: append([]string(nil), permissions...)}
}

// Has reports whether the identity holds permission directly or via wildcard.
func (i *Identity) Has(permission string) bool {
	if i == nil {
		return false
	}
	return slices.Contains(i.Permissions, permission) || slices.Contains(i.Permissions, Wildcard)
}

// Authorizer decides whether identity satisfies requirement.
type Authorizer interface {
	Authorize(ctx context.Context, identity *Identity, requirement *Requirement) (bool, error)
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, identity *Identity, requirement *Requirement) (bool, error)

// Authorize calls fn
func (fn AuthorizerFunc) Authorize(ctx context.Context, identity *Identity, requirement *Requirement) (bool, error) {
	return fn(ctx, identity, requirement)
}

// PermissionAuthorizer allows when the identity holds any required permission.
// A nil or empty requirement is never satisfied.
type PermissionAuthorizer struct{}

// Authorize implements Authorizer
func (PermissionAuthorizer) Authorize(_ context.Context, identity *Identity, requirement *Requirement) (bool, error) {
	if requirement == nil || len(requirement.Permissions) == 0 || identity == nil {
		return false, nil
	}
	for _, permission := range requirement.Permissions {
		if identity.Has(permission) {
			return true, nil
		}
	}
	return false, nil
}
