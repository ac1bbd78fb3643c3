package mcp

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/viant/mcp-registry/internal/logger"
	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/config"
	"github.com/viant/mcp-registry/mcp/container"
	"github.com/viant/mcp-registry/mcp/discovery"
	"github.com/viant/mcp-registry/mcp/hook"
	"github.com/viant/mcp-registry/mcp/registry"
)

// Service bundles configuration, the handler catalog, the tool registry and
// the root container scope every call scope derives from. All heavy lifting
// during instantiation lives in bootstrap.go.
type Service struct {
	started int32
	config  *config.Config

	log       *logger.Logger
	logger    zerolog.Logger
	hasLogger bool
	verifier *authz.TokenVerifier
	observer registry.Observer

	classes  []*discovery.Class
	bindings map[string]interface{}
	catalog  *discovery.Catalog
	hooks    *hook.Registry
	registry *registry.Registry
	root     *container.Scope
}

// Config returns the effective configuration. Callers must treat the
// returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Registry returns the tool registry.
func (s *Service) Registry() *registry.Registry { return s.registry }

// Logger returns the service logger.
func (s *Service) Logger() zerolog.Logger { return s.logger }

// Option modifies a service instance before it is initialised.
type Option func(*Service)

// WithConfig sets a custom configuration instance. When omitted a zero value
// config is assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithClasses registers handler classes in addition to the configured
// built-ins.
func WithClasses(classes ...*discovery.Class) Option {
	return func(s *Service) {
		s.classes = append(s.classes, classes...)
	}
}

// WithHook registers a hook under key.
func WithHook(key string, fn hook.Func) Option {
	return func(s *Service) {
		s.hooks.Register(key, fn)
	}
}

// WithLogger overrides the logger built from the logging config.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
		s.hasLogger = true
	}
}

// WithObserver reports every tool call to observer.
func WithObserver(observer registry.Observer) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

// WithBinding binds value under key in the root scope, for example a custom
// authz.Authorizer under authz.AuthorizerKey.
func WithBinding(key string, value interface{}) Option {
	return func(s *Service) {
		s.bindings[key] = value
	}
}

// New constructs a service. The registry is initialised by Start.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{hooks: hook.NewRegistry(), bindings: map[string]interface{}{}}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// Start initialises the tool registry. Multiple invocations are safe;
// subsequent calls are ignored once the registry is ready.
func (s *Service) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 0, 1) {
		return nil
	}
	if err := s.registry.Initialize(ctx); err != nil {
		atomic.StoreInt32(&s.started, 0)
		s.logger.Error().Err(err).Msg("Failed to initialize MCP tool registry")
		return err
	}
	return nil
}

// Shutdown releases the root scope and the handler catalog. Additional
// invocations have no effect and a stopped service cannot be restarted.
func (s *Service) Shutdown(_ context.Context) error {
	if atomic.SwapInt32(&s.started, 2) == 2 {
		return nil
	}
	s.logger.Info().Msg("MCP tool registry stopping...")
	err := s.root.Close()
	s.catalog.Close()
	if s.log != nil {
		if cErr := s.log.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}
	return err
}
