package mcp

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/viant/mcp-registry/internal/logger"
	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/config"
	"github.com/viant/mcp-registry/mcp/container"
	mcpctx "github.com/viant/mcp-registry/mcp/context"
	"github.com/viant/mcp-registry/mcp/discovery"
	"github.com/viant/mcp-registry/mcp/registry"
	"github.com/viant/mcp-registry/mcp/telemetry"
	"github.com/viant/mcp-registry/mcp/tool"
)

// localIdentityID identifies calls issued through ExecuteTool.
const localIdentityID = "local"

// init is the bootstrap routine invoked by New once all options have been
// applied. It orchestrates the individual preparation steps.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.initLogger(); err != nil {
		return err
	}
	if err := s.initTelemetry(); err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	if auth := s.config.Auth; auth != nil && auth.Secret != "" {
		s.verifier = authz.NewTokenVerifier(auth.Secret, auth.Issuer)
	}
	if err := s.initCatalog(ctx); err != nil {
		return fmt.Errorf("register handler classes: %w", err)
	}
	s.initScope()
	s.registry = registry.New(s.catalog,
		registry.WithLogger(logger.Component(s.logger, "registry")),
		registry.WithHooks(s.hooks),
		registry.WithObserver(s.observer),
	)
	return nil
}

// initDefaults applies fall-back values for optional settings.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	if len(s.config.Builtins) == 0 { // expose every built-in class
		s.config.Builtins = append(s.config.Builtins, "*")
	}
}

func (s *Service) initLogger() error {
	if s.hasLogger {
		return nil
	}
	l, err := logger.New(s.config.Logging)
	if err != nil {
		return err
	}
	s.log = l
	s.logger = l.Component("mcp")
	return nil
}

func (s *Service) initTelemetry() error {
	if s.observer != nil || s.config.Telemetry == nil || !s.config.Telemetry.Enabled {
		return nil
	}
	observer, err := telemetry.NewGlobalObserver()
	if err != nil {
		return err
	}
	s.observer = observer
	return nil
}

// initCatalog registers the caller supplied classes followed by the selected
// built-ins, after applying the configured tool policies.
func (s *Service) initCatalog(ctx context.Context) error {
	classes := append(append([]*discovery.Class{}, s.classes...), resolveBuiltins(s, s.config.Builtins)...)
	policies, err := s.config.LoadPolicies(ctx)
	if err != nil {
		return err
	}
	if err = config.ValidatePolicies(policies); err != nil {
		return err
	}
	classes = applyPolicies(classes, policies, s.logger)
	s.catalog = discovery.NewCatalog()
	return s.catalog.Register(classes...)
}

// initScope creates the root scope: class providers, the caller identity
// provider and the option bindings.
func (s *Service) initScope() {
	s.root = container.New()
	classes, _ := s.catalog.Classes(context.Background())
	for _, class := range classes {
		if class.Provider != nil {
			s.root.BindProvider(class.Key, class.Provider)
		}
	}
	s.root.BindProvider(authz.CurrentUserKey, s.currentUser)
	for key, value := range s.bindings {
		if provider, ok := value.(container.Provider); ok {
			s.root.BindProvider(key, provider)
			continue
		}
		s.root.Bind(key, value)
	}
}

// currentUser resolves the caller: an identity placed on the context by the
// endpoint, then a bearer token carried by the transport, otherwise an
// anonymous caller with the configured anonymous permissions.
func (s *Service) currentUser(ctx context.Context, _ *container.Scope) (interface{}, error) {
	if identity, ok := mcpctx.Identity(ctx); ok {
		return identity, nil
	}
	if token, ok := mcpctx.AuthToken(ctx); ok && s.verifier != nil {
		identity, err := s.verifier.Verify(token)
		if err != nil {
			return nil, err
		}
		return identity, nil
	}
	return s.anonymous(), nil
}

func (s *Service) anonymous() *authz.Identity {
	if s.config.Auth == nil {
		return authz.Anonymous()
	}
	return authz.Anonymous(s.config.Auth.Anonymous...)
}

// localIdentity is the CLI caller; it holds every permission unless
// auth.local narrows it.
func (s *Service) localIdentity() *authz.Identity {
	permissions := []string{authz.Wildcard}
	if auth := s.config.Auth; auth != nil && len(auth.Local) > 0 {
		permissions = append([]string(nil), auth.Local...)
	}
	return &authz.Identity{ID: localIdentityID, Permissions: permissions}
}

// applyPolicies returns classes with the policy overrides applied to the
// matching tool methods. Matched classes and methods are copied so caller
// declarations stay untouched.
func applyPolicies(classes []*discovery.Class, policies []*config.Policy, l zerolog.Logger) []*discovery.Class {
	if len(policies) == 0 {
		return classes
	}
	index := make(map[string]*config.Policy, len(policies))
	for _, policy := range policies {
		index[tool.Canonical(policy.Tool)] = policy
	}
	applied := map[string]bool{}
	ret := make([]*discovery.Class, 0, len(classes))
	for _, class := range classes {
		if class == nil {
			ret = append(ret, class)
			continue
		}
		clone := *class
		clone.Methods = make([]*discovery.Method, 0, len(class.Methods))
		for _, method := range class.Methods {
			if method == nil || method.Tool == nil {
				clone.Methods = append(clone.Methods, method)
				continue
			}
			key := tool.Canonical(discovery.ToolName(class, method))
			policy, ok := index[key]
			if !ok {
				clone.Methods = append(clone.Methods, method)
				continue
			}
			applied[key] = true
			clone.Methods = append(clone.Methods, applyPolicy(method, policy))
		}
		ret = append(ret, &clone)
	}
	for key, policy := range index {
		if !applied[key] {
			l.Warn().Str("tool", policy.Tool).Msg("policy matches no tool")
		}
	}
	return ret
}

func applyPolicy(method *discovery.Method, policy *config.Policy) *discovery.Method {
	ret := *method
	spec := *method.Tool
	if policy.Description != "" {
		spec.Description = policy.Description
	}
	if policy.PreHook != nil {
		spec.PreHook = policy.PreHook
	}
	if policy.PostHook != nil {
		spec.PostHook = policy.PostHook
	}
	if policy.Permissions != nil {
		ret.Authorization = authz.NewRequirement(policy.Permissions...)
	}
	ret.Tool = &spec
	return &ret
}
