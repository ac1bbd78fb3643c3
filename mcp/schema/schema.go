package schema

// Property describes one tool parameter.
type Property struct {
	Name        string
	Kind        Kind
	Optional    bool
	Description string
}

// Schema is an ordered parameter schema. The zero value is the empty schema.
type Schema struct {
	Properties []Property
}

// New creates a schema from properties
func New(properties ...Property) Schema {
	return Schema{Properties: append([]Property(nil), properties...)}
}

// IsEmpty returns true when the schema declares no parameter
func (s Schema) IsEmpty() bool { return len(s.Properties) == 0 }

// Keys returns parameter names in declaration order
func (s Schema) Keys() []string {
	ret := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		ret = append(ret, p.Name)
	}
	return ret
}

// Required returns names of non optional parameters
func (s Schema) Required() []string {
	var ret []string
	for _, p := range s.Properties {
		if !p.Optional {
			ret = append(ret, p.Name)
		}
	}
	return ret
}

// Lookup returns a property by name
func (s Schema) Lookup(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Clone returns a detached copy
func (s Schema) Clone() Schema {
	return New(s.Properties...)
}

// PropertyDocuments renders per property JSON Schema fragments.
func (s Schema) PropertyDocuments() map[string]map[string]interface{} {
	ret := make(map[string]map[string]interface{}, len(s.Properties))
	for _, p := range s.Properties {
		doc := p.Kind.document()
		if p.Description != "" {
			doc["description"] = p.Description
		}
		ret[p.Name] = doc
	}
	return ret
}

// Document renders the schema as a JSON Schema object.
func (s Schema) Document() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Properties))
	for name, doc := range s.PropertyDocuments() {
		properties[name] = doc
	}
	ret := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if required := s.Required(); len(required) > 0 {
		ret["required"] = required
	}
	return ret
}
