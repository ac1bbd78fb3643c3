package discovery

import (
	"context"

	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/container"
	"github.com/viant/mcp-registry/mcp/hook"
	"github.com/viant/mcp-registry/mcp/schema"
)

// Invoker calls a handler method on instance with positional args.
type Invoker func(ctx context.Context, instance interface{}, args []interface{}) (interface{}, error)

// ToolSpec is the tool tag attached to a method.
type ToolSpec struct {
	Name        string
	Description string
	Schema      schema.Schema
	PreHook     *hook.Binding
	PostHook    *hook.Binding
}

// Method is a declared handler method.
type Method struct {
	Name string
	// Tool is nil for methods that are not exposed.
	Tool *ToolSpec
	// Params is nil when parameter metadata was never declared.
	Params        []schema.Parameter
	Authorization *authz.Requirement
	Invoke        Invoker
}

// Class is a handler class. Key is the container binding key its instance
// is resolved by.
type Class struct {
	Key      string
	Provider container.Provider
	Methods  []*Method
}

// NewClass creates a class; provider may be nil when the instance is bound
// elsewhere.
func NewClass(key string, provider container.Provider) *Class {
	return &Class{Key: key, Provider: provider}
}

// Singleton returns a provider always returning instance.
func Singleton(instance interface{}) container.Provider {
	return func(context.Context, *container.Scope) (interface{}, error) {
		return instance, nil
	}
}

// Method declares a method and returns its builder.
func (c *Class) Method(name string, invoke Invoker) *MethodBuilder {
	method := &Method{Name: name, Invoke: invoke}
	c.Methods = append(c.Methods, method)
	return &MethodBuilder{method: method}
}

// MethodBuilder configures a declared method.
type MethodBuilder struct {
	method *Method
}

// Tool tags the method as a tool.
func (b *MethodBuilder) Tool(spec ToolSpec) *MethodBuilder {
	b.method.Tool = &spec
	return b
}

// Params declares parameter metadata; calling it with no argument declares
// zero parameters.
func (b *MethodBuilder) Params(params ...schema.Parameter) *MethodBuilder {
	b.method.Params = append(make([]schema.Parameter, 0, len(params)), params...)
	return b
}

// Authorize declares the permissions required to call the method.
func (b *MethodBuilder) Authorize(permissions ...string) *MethodBuilder {
	b.method.Authorization = authz.NewRequirement(permissions...)
	return b
}

// Build returns the declared method.
func (b *MethodBuilder) Build() *Method { return b.method }

// Param declares a required parameter.
func Param(name, typ string) schema.Parameter {
	return schema.Parameter{Name: name, Type: typ}
}

// Optional declares a parameter with required=false.
func Optional(name, typ string) schema.Parameter {
	required := false
	return schema.Parameter{Name: name, Type: typ, Required: &required}
}
