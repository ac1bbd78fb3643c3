package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// InvalidArgumentsError reports argument bag violations.
type InvalidArgumentsError struct {
	Violations []string
}

func (e *InvalidArgumentsError) Error() string {
	return "invalid arguments: " + strings.Join(e.Violations, "; ")
}

// Validator validates argument bags against a compiled schema.
type Validator struct {
	compiled *gojsonschema.Schema
}

// NewValidator compiles s.
func NewValidator(s Schema) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.Document()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate returns *InvalidArgumentsError when args do not conform.
func (v *Validator) Validate(args map[string]interface{}) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	result, err := v.compiled.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return &InvalidArgumentsError{Violations: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	ret := &InvalidArgumentsError{}
	for _, violation := range result.Errors() {
		ret.Violations = append(ret.Violations, violation.String())
	}
	return ret
}
