package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/viant/mcp-registry/mcp/container"
	"github.com/viant/mcp-registry/mcp/discovery"
	"github.com/viant/mcp-registry/mcp/hook"
	"github.com/viant/mcp-registry/mcp/schema"
)

// Registry holds the tool catalog built by Initialize.
type Registry struct {
	source   discovery.Source
	deriver  schema.Deriver
	hooks    *hook.Registry
	resolver *hook.Resolver
	observer Observer
	logger   zerolog.Logger

	// mux serialises Initialize; readers rely on the atomic state only.
	mux   sync.Mutex
	state int32
	tools []*Tool
	index map[string]*Tool
}

// New creates a registry over source.
func New(source discovery.Source, opts ...Option) *Registry {
	ret := &Registry{
		source:   source,
		deriver:  schema.ParameterDeriver{},
		observer: nopObserver{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.resolver = hook.NewResolver(ret.hooks, ret.logger)
	return ret
}

// State returns the lifecycle state.
func (r *Registry) State() State { return State(atomic.LoadInt32(&r.state)) }

// IsReady reports whether Initialize completed.
func (r *Registry) IsReady() bool { return r.State() == Ready }

// Initialize discovers tools and builds their execution closures. It runs
// once; later calls return immediately. Only an unavailable handler source is
// fatal, in which case the registry stays uninitialized.
func (r *Registry) Initialize(ctx context.Context) error {
	if r.IsReady() {
		return nil
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.IsReady() {
		return nil
	}
	atomic.StoreInt32(&r.state, int32(Initializing))
	candidates, err := discovery.Discover(ctx, r.source, r.logger)
	if err != nil {
		atomic.StoreInt32(&r.state, int32(Uninitialized))
		return fmt.Errorf("failed to discover tools: %w", err)
	}
	tools := make([]*Tool, 0, len(candidates))
	index := make(map[string]*Tool, len(candidates))
	for _, candidate := range candidates {
		if existing, dup := index[candidate.Name]; dup {
			r.logger.Warn().Str("tool", candidate.Name).
				Str("class", candidate.Class.Key).Str("method", candidate.Method.Name).
				Str("registeredBy", existing.class+"."+existing.method).
				Msg("duplicate tool name, keeping first registration")
			continue
		}
		aTool := r.newTool(candidate)
		tools = append(tools, aTool)
		index[aTool.name] = aTool
	}
	r.tools = tools
	r.index = index
	atomic.StoreInt32(&r.state, int32(Ready))
	r.logger.Info().Int("tools", len(tools)).Msg("tool registry initialized")
	return nil
}

// Tools returns the tool definitions in discovery order.
func (r *Registry) Tools() ([]*Tool, error) {
	if !r.IsReady() {
		return nil, ErrNotReady
	}
	return append([]*Tool(nil), r.tools...), nil
}

// Count returns number of tools, 0 before the registry is ready.
func (r *Registry) Count() int {
	if !r.IsReady() {
		return 0
	}
	return len(r.tools)
}

// Lookup returns a tool by name.
func (r *Registry) Lookup(name string) (*Tool, error) {
	if !r.IsReady() {
		return nil, ErrNotReady
	}
	aTool, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return aTool, nil
}

// Call runs the named tool.
func (r *Registry) Call(ctx context.Context, scope *container.Scope, name string, args map[string]interface{}) (*Result, error) {
	aTool, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return aTool.Call(ctx, scope, args)
}
