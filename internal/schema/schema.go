// Package schema declares the argument shapes tools accept and the
// generic validator that checks raw call arguments against them. One
// validation engine serves every tool; individual tools only declare
// field descriptors.
package schema

// Kind identifies the value type a field accepts.
type Kind string

const (
	String     Kind = "string"
	Integer    Kind = "integer"
	Boolean    Kind = "boolean"
	StringList Kind = "string_list"
	Record     Kind = "record"
	RecordList Kind = "record_list"
	// StringMap is a flat map of string keys to string values, e.g. a
	// tag set. Keys are not declared ahead of time.
	StringMap Kind = "string_map"
	// AnyMap is a provider-passthrough mapping: arbitrary nested keys
	// and values, forwarded unvalidated.
	AnyMap Kind = "any_map"
)

// Field describes one argument. Record and RecordList fields nest via
// Fields; an empty Fields on a record kind means passthrough.
type Field struct {
	Name        string
	Type        Kind
	Required    bool
	Description string
	Enum        []string
	Pattern     string
	MinItems    int
	MaxItems    int
	Fields      []Field
}

// Schema is the declared shape of one tool's arguments. Unknown
// top-level keys are rejected unless AllowUnknown is set; unknown keys
// inside records are always accepted and passed through.
type Schema struct {
	Fields       []Field
	AllowUnknown bool
}

// JSONSchema renders the schema as a JSON-Schema object map for the
// tool catalog.
func (s Schema) JSONSchema() map[string]any {
	properties := map[string]any{}
	var required []string
	for _, field := range s.Fields {
		properties[field.Name] = field.jsonSchema()
		if field.Required {
			required = append(required, field.Name)
		}
	}
	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	if !s.AllowUnknown {
		out["additionalProperties"] = false
	}
	return out
}

func (f Field) jsonSchema() map[string]any {
	out := map[string]any{}
	switch f.Type {
	case String:
		out["type"] = "string"
		if len(f.Enum) > 0 {
			out["enum"] = f.Enum
		}
		if f.Pattern != "" {
			out["pattern"] = f.Pattern
		}
	case Integer:
		out["type"] = "integer"
	case Boolean:
		out["type"] = "boolean"
	case StringList:
		out["type"] = "array"
		out["items"] = map[string]any{"type": "string"}
	case Record:
		out["type"] = "object"
		if len(f.Fields) > 0 {
			out["properties"] = recordProperties(f.Fields)
		}
	case RecordList:
		items := map[string]any{"type": "object"}
		if len(f.Fields) > 0 {
			items["properties"] = recordProperties(f.Fields)
		}
		out["type"] = "array"
		out["items"] = items
	case StringMap:
		out["type"] = "object"
		out["additionalProperties"] = map[string]any{"type": "string"}
	case AnyMap:
		out["type"] = "object"
	}
	if f.Description != "" {
		out["description"] = f.Description
	}
	if f.MinItems > 0 {
		out["minItems"] = f.MinItems
	}
	if f.MaxItems > 0 {
		out["maxItems"] = f.MaxItems
	}
	return out
}

func recordProperties(fields []Field) map[string]any {
	properties := map[string]any{}
	for _, field := range fields {
		properties[field.Name] = field.jsonSchema()
	}
	return properties
}

// FieldNames lists the declared top-level field names, useful when
// checking that every argument a handler reads is declared.
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}
