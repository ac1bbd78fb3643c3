package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/viant/mcp-registry/internal/conv"
	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/container"
	mcpctx "github.com/viant/mcp-registry/mcp/context"
	"github.com/viant/mcp-registry/mcp/hook"
)

type call struct {
	tool   *Tool
	id     string
	stage  Stage
	logger zerolog.Logger
}

// Call runs the execution pipeline in a child of parent. The child scope is
// carried by the context handed to hooks and handlers and is released on
// every exit path.
func (t *Tool) Call(ctx context.Context, parent *container.Scope, args map[string]interface{}) (result *Result, err error) {
	if parent == nil {
		return nil, fmt.Errorf("tool %q: container scope was nil", t.name)
	}
	c := &call{tool: t, id: uuid.New().String()}
	c.logger = t.registry.logger.With().Str("tool", t.name).Str("call", c.id).Logger()
	started := time.Now()
	observeCtx := ctx
	defer func() {
		t.registry.observer.ObserveCall(observeCtx, Observation{
			CallID:   c.id,
			Tool:     t.name,
			Outcome:  OutcomeOf(err),
			Stage:    c.stage,
			Duration: time.Since(started),
			Err:      err,
		})
	}()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("tool %q: panic at %s: %v", t.name, c.stage, r)
			c.logger.Error().Err(err).Msg("call panicked")
		}
	}()

	scope := parent.Child()
	defer func() {
		if cErr := scope.Close(); cErr != nil {
			c.logger.Warn().Err(cErr).Msg("failed to release call scope")
		}
	}()

	ctx = mcpctx.WithScope(ctx, scope)
	if err = c.authorize(ctx, scope); err != nil {
		c.logger.Debug().Err(err).Msg("call denied")
		return nil, err
	}

	if args == nil {
		args = map[string]interface{}{}
	}
	hc := &hook.Context{CallID: c.id, ToolName: t.name, Args: conv.CloneMap(args)}
	if err = c.preHook(ctx, scope, hc); err != nil {
		return nil, err
	}
	raw, err := c.dispatch(ctx, scope, hc)
	if err != nil {
		return nil, err
	}
	c.stage = StageShape
	if result, err = Shape(raw); err != nil {
		return nil, asDispatchError(t.name, err)
	}
	c.stage = StageDone
	return result, nil
}

func (c *call) authorize(ctx context.Context, scope *container.Scope) error {
	c.stage = StageAuthorize
	t := c.tool
	scope.Bind(authz.MetadataKey, t.Authorization())
	scope.Bind(authz.ClassKey, t.class)
	scope.Bind(authz.MethodKey, t.method)

	if t.authorization == nil || len(t.authorization.Permissions) == 0 {
		return &AccessDeniedError{Tool: t.name, Reason: ErrMissingAuthorization.Error(), Err: ErrMissingAuthorization}
	}
	value, found, err := scope.Lookup(ctx, authz.CurrentUserKey)
	if err != nil {
		return &AccessDeniedError{Tool: t.name, Reason: "unable to resolve caller identity", Err: err}
	}
	identity, _ := value.(*authz.Identity)
	if !found || identity == nil {
		return &AccessDeniedError{Tool: t.name, Reason: "unauthenticated"}
	}
	var authorizer authz.Authorizer = authz.PermissionAuthorizer{}
	if value, found, err = scope.Lookup(ctx, authz.AuthorizerKey); err != nil {
		return &AccessDeniedError{Tool: t.name, Identity: identity.ID, Reason: "unable to resolve authorizer", Err: err}
	} else if found {
		if authorizer, _ = value.(authz.Authorizer); authorizer == nil {
			return &AccessDeniedError{Tool: t.name, Identity: identity.ID, Reason: fmt.Sprintf("invalid authorizer %T", value)}
		}
	}
	allowed, err := authorizer.Authorize(ctx, identity, t.Authorization())
	if err != nil {
		return &AccessDeniedError{Tool: t.name, Identity: identity.ID, Reason: "authorization failed", Err: err}
	}
	if !allowed {
		return &AccessDeniedError{Tool: t.name, Identity: identity.ID, Reason: "insufficient permissions"}
	}
	return nil
}

func (c *call) preHook(ctx context.Context, scope *container.Scope, hc *hook.Context) error {
	c.stage = StagePreHook
	t := c.tool
	fn := t.registry.resolver.Resolve(ctx, scope, t.preHook)
	if fn == nil {
		return nil
	}
	hc.Metadata = t.preHook.Metadata()
	replaced, err := runHook(ctx, fn, hc)
	if err != nil {
		return &HookError{Tool: t.name, Stage: StagePreHook, Err: err}
	}
	if replaced != nil {
		hc.Args = replaced.Args
	}
	if hc.Args == nil {
		hc.Args = map[string]interface{}{}
	}
	return nil
}

// dispatch invokes the handler; the post-hook runs in a deferred call so it
// observes every dispatch outcome.
func (c *call) dispatch(ctx context.Context, scope *container.Scope, hc *hook.Context) (raw interface{}, err error) {
	c.stage = StageDispatch
	defer func() {
		raw, err = c.postHook(ctx, scope, hc, raw, err)
	}()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	raw, err = c.invoke(ctx, scope, hc.Args)
	if err != nil {
		c.logger.Error().Err(err).Msg("tool dispatch failed")
	}
	return raw, err
}

func (c *call) invoke(ctx context.Context, scope *container.Scope, args map[string]interface{}) (interface{}, error) {
	t := c.tool
	if t.validator != nil {
		if err := t.validator.Validate(args); err != nil {
			return nil, err
		}
	}
	if t.provider != nil && !scope.IsBound(t.class) {
		scope.BindProvider(t.class, t.provider)
	}
	instance, err := scope.Get(ctx, t.class)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve handler %q: %w", t.class, err)
	}
	return t.invoke(ctx, instance, t.dispatcher.arguments(args))
}

func (c *call) postHook(ctx context.Context, scope *container.Scope, hc *hook.Context, raw interface{}, dispatchErr error) (interface{}, error) {
	c.stage = StagePostHook
	t := c.tool
	hc.Result = raw
	hc.Error = dispatchErr
	if fn := t.registry.resolver.Resolve(ctx, scope, t.postHook); fn != nil {
		hc.Metadata = t.postHook.Metadata()
		replaced, err := runHook(ctx, fn, hc)
		if err != nil {
			hookErr := &HookError{Tool: t.name, Stage: StagePostHook, Err: err}
			if dispatchErr != nil {
				return nil, fmt.Errorf("%w; %w", asDispatchError(t.name, dispatchErr), hookErr)
			}
			return nil, hookErr
		}
		if replaced != nil && replaced != hc {
			hc.Result, hc.Args, hc.Error = replaced.Result, replaced.Args, replaced.Error
		}
		if hc.Result != nil {
			raw = hc.Result
		}
		if hc.Error != nil {
			dispatchErr = hc.Error
		}
	}
	if dispatchErr != nil {
		return nil, asDispatchError(t.name, dispatchErr)
	}
	return raw, nil
}

func runHook(ctx context.Context, fn hook.Func, hc *hook.Context) (replaced *hook.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			replaced, err = nil, fmt.Errorf("hook panic: %v", r)
		}
	}()
	return fn(ctx, hc)
}
