// Package hook defines pre/post invocation hooks, the registry mapping
// binding keys to hook implementations and the resolver used per call.
package hook

import (
	"context"
)

// Context is the invocation state a hook observes. It lives for one call.
type Context struct {
	CallID   string
	ToolName string
	Args     map[string]interface{}
	Result   interface{}
	Error    error
	Metadata map[string]interface{}
}

// Func is a hook. Returning a nil *Context keeps the current state.
type Func func(ctx context.Context, hc *Context) (*Context, error)

// Binding names a hook and carries its opaque configuration.
type Binding struct {
	Key    string                 `yaml:"key" json:"key"`
	Config map[string]interface{} `yaml:"config,omitempty" json:"config,omitempty"`
}

// Metadata returns a copy of the binding configuration.
func (b *Binding) Metadata() map[string]interface{} {
	if b == nil || b.Config == nil {
		return nil
	}
	ret := make(map[string]interface{}, len(b.Config))
	for k, v := range b.Config {
		ret[k] = v
	}
	return ret
}
