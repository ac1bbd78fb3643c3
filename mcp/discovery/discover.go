package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/viant/mcp-registry/mcp/tool"
)

// Candidate is a discovered tool method.
type Candidate struct {
	Class          *Class
	Method         *Method
	Name           string
	ParameterNames []string
}

// Discover walks source in class order then method order and returns the
// tool-tagged methods. Broken methods are skipped with a warning; only a
// failing source is an error.
func Discover(ctx context.Context, source Source, logger zerolog.Logger) ([]*Candidate, error) {
	if source == nil {
		return nil, ErrSourceUnavailable
	}
	classes, err := source.Classes(ctx)
	if err != nil {
		return nil, err
	}
	var ret []*Candidate
	for _, class := range classes {
		if class == nil {
			continue
		}
		for _, method := range class.Methods {
			if method == nil || method.Tool == nil {
				continue
			}
			candidate, err := newCandidate(class, method)
			if err != nil {
				logger.Warn().Str("class", class.Key).Str("method", method.Name).Err(err).Msg("skipping tool method")
				continue
			}
			ret = append(ret, candidate)
		}
	}
	return ret, nil
}

func newCandidate(class *Class, method *Method) (*Candidate, error) {
	if method.Invoke == nil {
		return nil, fmt.Errorf("no invoker")
	}
	if method.Params == nil {
		return nil, fmt.Errorf("no parameter metadata")
	}
	names := make([]string, 0, len(method.Params))
	for i, param := range method.Params {
		name := strings.TrimSpace(param.Name)
		if name == "" {
			return nil, fmt.Errorf("parameter %d: missing name", i)
		}
		names = append(names, name)
	}
	return &Candidate{Class: class, Method: method, Name: ToolName(class, method), ParameterNames: names}, nil
}

// ToolName returns the advertised name of a tool-tagged method: the tag name
// when set, otherwise the canonical class-method name.
func ToolName(class *Class, method *Method) string {
	if method.Tool != nil && method.Tool.Name != "" {
		return method.Tool.Name
	}
	return tool.NewName(class.Key, method.Name).String()
}
