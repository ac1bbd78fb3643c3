package schema

import "strings"

// Kind is a primitive parameter kind.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindAny     Kind = "any"
)

// KindOf maps a declared framework type name to a Kind. Unknown names map to
// KindAny; integer is advertised as number.
func KindOf(declared string) Kind {
	switch strings.ToLower(strings.TrimSpace(declared)) {
	case "string":
		return KindString
	case "number", "integer", "int", "float":
		return KindNumber
	case "boolean", "bool":
		return KindBoolean
	case "object":
		return KindObject
	case "array":
		return KindArray
	}
	return KindAny
}

// document returns the JSON Schema fragment for the kind.
func (k Kind) document() map[string]interface{} {
	switch k {
	case KindString, KindNumber, KindBoolean:
		return map[string]interface{}{"type": string(k)}
	case KindObject:
		return map[string]interface{}{"type": "object"}
	case KindArray:
		return map[string]interface{}{"type": "array", "items": map[string]interface{}{}}
	}
	return map[string]interface{}{}
}
