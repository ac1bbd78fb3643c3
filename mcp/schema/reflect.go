package schema

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// FromStruct builds an explicit schema from the exported fields of a struct
// value. Field order follows the struct declaration.
func FromStruct(v interface{}) (Schema, error) {
	reflector := &jsonschema.Reflector{DoNotReference: true, Anonymous: true}
	doc := reflector.Reflect(v)
	if doc == nil || doc.Properties == nil {
		return Schema{}, fmt.Errorf("%T: no properties", v)
	}
	required := make(map[string]bool, len(doc.Required))
	for _, name := range doc.Required {
		required[name] = true
	}
	ret := Schema{}
	for pair := doc.Properties.Oldest(); pair != nil; pair = pair.Next() {
		kind := KindAny
		if pair.Value != nil {
			kind = KindOf(pair.Value.Type)
		}
		prop := Property{Name: pair.Key, Kind: kind, Optional: !required[pair.Key]}
		if pair.Value != nil {
			prop.Description = pair.Value.Description
		}
		ret.Properties = append(ret.Properties, prop)
	}
	return ret, nil
}
