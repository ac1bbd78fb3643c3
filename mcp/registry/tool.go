package registry

import (
	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/container"
	"github.com/viant/mcp-registry/mcp/discovery"
	"github.com/viant/mcp-registry/mcp/hook"
	"github.com/viant/mcp-registry/mcp/schema"
)

// Tool is an immutable tool descriptor together with its execution closure.
// It is safe for concurrent calls.
type Tool struct {
	name           string
	description    string
	schema         schema.Schema
	validator      *schema.Validator
	parameterNames []string
	preHook        *hook.Binding
	postHook       *hook.Binding
	class          string
	provider       container.Provider
	method         string
	authorization  *authz.Requirement
	dispatcher     dispatcher
	invoke         discovery.Invoker
	registry       *Registry
}

func (t *Tool) Name() string { return t.name }

func (t *Tool) Description() string { return t.description }

// Schema returns a copy of the parameter schema.
func (t *Tool) Schema() schema.Schema { return t.schema.Clone() }

// ParameterNames returns declared parameter names in positional order.
func (t *Tool) ParameterNames() []string { return append([]string(nil), t.parameterNames...) }

// Class returns the binding key of the owning handler class.
func (t *Tool) Class() string { return t.class }

// Method returns the handler method name.
func (t *Tool) Method() string { return t.method }

// Strategy returns the dispatch strategy.
func (t *Tool) Strategy() Strategy { return t.dispatcher.strategy() }

// Authorization returns a copy of the declared requirement, nil when none.
func (t *Tool) Authorization() *authz.Requirement {
	if t.authorization == nil {
		return nil
	}
	return authz.NewRequirement(t.authorization.Permissions...)
}

// PreHook returns the pre-hook binding key, empty when none.
func (t *Tool) PreHook() string { return bindingKey(t.preHook) }

// PostHook returns the post-hook binding key, empty when none.
func (t *Tool) PostHook() string { return bindingKey(t.postHook) }

func bindingKey(b *hook.Binding) string {
	if b == nil {
		return ""
	}
	return b.Key
}

func cloneBinding(b *hook.Binding) *hook.Binding {
	if b == nil {
		return nil
	}
	return &hook.Binding{Key: b.Key, Config: b.Metadata()}
}

func (r *Registry) newTool(candidate *discovery.Candidate) *Tool {
	spec := candidate.Method.Tool
	logger := r.logger.With().Str("tool", candidate.Name).Logger()
	ret := &Tool{
		name:           candidate.Name,
		description:    spec.Description,
		parameterNames: candidate.ParameterNames,
		preHook:        cloneBinding(spec.PreHook),
		postHook:       cloneBinding(spec.PostHook),
		class:          candidate.Class.Key,
		provider:       candidate.Class.Provider,
		method:         candidate.Method.Name,
		dispatcher:     newDispatcher(candidate.ParameterNames),
		invoke:         candidate.Method.Invoke,
		registry:       r,
	}
	if req := candidate.Method.Authorization; req != nil {
		ret.authorization = authz.NewRequirement(req.Permissions...)
	}
	derived, err := schema.Resolve(spec.Schema.Clone(), candidate.Method.Params, r.deriver)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to derive parameter schema, using empty schema")
		derived = schema.Schema{}
	}
	ret.schema = derived
	if ret.validator, err = schema.NewValidator(derived); err != nil {
		logger.Warn().Err(err).Msg("argument validation disabled")
	}
	return ret
}
