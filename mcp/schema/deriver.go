package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoParameters is returned when parameter metadata is absent.
var ErrNoParameters = errors.New("no parameter metadata")

// Parameter is a declared parameter descriptor as the framework records it.
type Parameter struct {
	Name        string
	Type        string
	Required    *bool
	Description string
}

// IsOptional reports whether the parameter was declared with required=false.
func (p Parameter) IsOptional() bool {
	return p.Required != nil && !*p.Required
}

// Deriver turns declared parameters into a schema.
type Deriver interface {
	Derive(params []Parameter) (Schema, error)
}

// ParameterDeriver is the default Deriver. A nil params slice means metadata
// is unavailable; an empty one declares zero parameters.
type ParameterDeriver struct{}

// Derive builds a schema keeping the declaration order of params.
func (ParameterDeriver) Derive(params []Parameter) (Schema, error) {
	if params == nil {
		return Schema{}, ErrNoParameters
	}
	seen := make(map[string]bool, len(params))
	ret := Schema{Properties: make([]Property, 0, len(params))}
	for i, param := range params {
		name := strings.TrimSpace(param.Name)
		if name == "" {
			return Schema{}, fmt.Errorf("parameter %d: missing name", i)
		}
		if seen[name] {
			return Schema{}, fmt.Errorf("parameter %q: declared more than once", name)
		}
		seen[name] = true
		ret.Properties = append(ret.Properties, Property{
			Name:        name,
			Kind:        KindOf(param.Type),
			Optional:    param.IsOptional(),
			Description: param.Description,
		})
	}
	return ret, nil
}

// Resolve returns explicit verbatim when it declares any property; only
// otherwise is deriver consulted.
func Resolve(explicit Schema, params []Parameter, deriver Deriver) (Schema, error) {
	if !explicit.IsEmpty() {
		return explicit, nil
	}
	return deriver.Derive(params)
}
