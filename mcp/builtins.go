package mcp

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/container"
	mcpctx "github.com/viant/mcp-registry/mcp/context"
	"github.com/viant/mcp-registry/mcp/discovery"
	"github.com/viant/mcp-registry/mcp/matcher"
	"github.com/viant/mcp-registry/mcp/schema"
)

// builtinFactories lists the handler classes shipped with the service. The
// key is the class key so that config patterns match it directly.
var builtinFactories = map[string]func(s *Service) *discovery.Class{
	"system/echo":  newEchoClass,
	"system/clock": newClockClass,
	"system/info":  newInfoClass,
}

// resolveBuiltins converts config patterns ("*" for all, prefix or exact)
// into classes, ordered by key.
func resolveBuiltins(s *Service, patterns []string) []*discovery.Class {
	keys := make([]string, 0, len(builtinFactories))
	for key := range builtinFactories {
		if matcher.MatchAny(patterns, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	ret := make([]*discovery.Class, 0, len(keys))
	for _, key := range keys {
		ret = append(ret, builtinFactories[key](s))
	}
	return ret
}

type echoHandler struct{}

func (echoHandler) Echo(_ context.Context, text string) (string, error) {
	return text, nil
}

func newEchoClass(*Service) *discovery.Class {
	class := discovery.NewClass("system/echo", discovery.Singleton(echoHandler{}))
	class.Method("echo", discovery.Bind1(echoHandler.Echo)).
		Tool(discovery.ToolSpec{Description: "Returns the supplied text."}).
		Params(discovery.Param("text", "string")).
		Authorize("system.echo")
	return class
}

type clockHandler struct {
	now func() time.Time
}

type clockArgs struct {
	Layout string `json:"layout,omitempty" jsonschema:"description=Go time layout; RFC3339 when empty"`
	Zone   string `json:"zone,omitempty" jsonschema:"description=IANA time zone; UTC when empty"`
}

// clockSchema is the advertised schema of system/clock; it adds
// descriptions that positional parameter declarations cannot carry.
var clockSchema = mustSchema(clockArgs{})

func mustSchema(v interface{}) schema.Schema {
	ret, err := schema.FromStruct(v)
	if err != nil {
		panic(err)
	}
	return ret
}

// Now formats the current time; layout defaults to RFC3339 and zone to UTC.
func (c *clockHandler) Now(_ context.Context, layout, zone string) (map[string]interface{}, error) {
	if layout == "" {
		layout = time.RFC3339
	}
	location := time.UTC
	if zone != "" {
		var err error
		if location, err = time.LoadLocation(zone); err != nil {
			return nil, fmt.Errorf("invalid zone %q: %w", zone, err)
		}
	}
	now := c.now().In(location)
	return map[string]interface{}{"time": now.Format(layout), "unix": now.Unix()}, nil
}

func newClockClass(*Service) *discovery.Class {
	class := discovery.NewClass("system/clock", discovery.Singleton(&clockHandler{now: time.Now}))
	class.Method("now", discovery.Bind2((*clockHandler).Now)).
		Tool(discovery.ToolSpec{Description: "Returns the current time.", Schema: clockSchema}).
		Params(
			discovery.Optional("layout", "string"),
			discovery.Optional("zone", "string"),
		).
		Authorize("system.clock")
	return class
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type infoHandler struct {
	service *Service
}

// Tools lists the registered tools.
func (h *infoHandler) Tools(context.Context) ([]toolInfo, error) {
	tools, err := h.service.registry.Tools()
	if err != nil {
		return nil, err
	}
	ret := make([]toolInfo, 0, len(tools))
	for _, aTool := range tools {
		ret = append(ret, toolInfo{Name: aTool.Name(), Description: aTool.Description()})
	}
	return ret, nil
}

// Whoami returns the identity the call was authorized as.
func (h *infoHandler) Whoami(ctx context.Context) (*authz.Identity, error) {
	scope, ok := mcpctx.Scope(ctx)
	if !ok {
		return nil, fmt.Errorf("call scope unavailable")
	}
	return container.As[*authz.Identity](ctx, scope, authz.CurrentUserKey)
}

func newInfoClass(s *Service) *discovery.Class {
	class := discovery.NewClass("system/info", discovery.Singleton(&infoHandler{service: s}))
	class.Method("tools", discovery.Bind0((*infoHandler).Tools)).
		Tool(discovery.ToolSpec{Description: "Lists the registered tools."}).
		Params().
		Authorize("system.info")
	class.Method("whoami", discovery.Bind0((*infoHandler).Whoami)).
		Tool(discovery.ToolSpec{Description: "Returns the calling identity."}).
		Params().
		Authorize("system.info")
	return class
}
