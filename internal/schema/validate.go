package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ErrorKind classifies validation failures.
type ErrorKind string

const (
	MissingField ErrorKind = "missing_field"
	TypeMismatch ErrorKind = "type_mismatch"
	InvalidEnum  ErrorKind = "invalid_enum"
	InvalidValue ErrorKind = "invalid_value"
	UnknownField ErrorKind = "unknown_field"
)

// Error reports one validation failure with the path of the offending
// field, e.g. "targets[1].Port".
type Error struct {
	Kind     ErrorKind
	Field    string
	Expected string
	Actual   string
	Allowed  []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case TypeMismatch:
		return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Expected, e.Actual)
	case InvalidEnum:
		return fmt.Sprintf("%s: must be one of %s", e.Field, strings.Join(e.Allowed, ", "))
	case UnknownField:
		return fmt.Sprintf("%s: unknown field", e.Field)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Expected)
	}
}

// Args holds arguments that passed validation. Accessors return zero
// values for absent optional fields.
type Args map[string]any

// Validate walks the schema against the raw argument mapping. It is
// pure: no provider contact, no mutation of the input.
func Validate(s Schema, raw map[string]any) (Args, *Error) {
	if raw == nil {
		raw = map[string]any{}
	}
	if !s.AllowUnknown {
		declared := map[string]bool{}
		for _, field := range s.Fields {
			declared[field.Name] = true
		}
		for key := range raw {
			if !declared[key] {
				return nil, &Error{Kind: UnknownField, Field: key}
			}
		}
	}
	args := Args{}
	for _, field := range s.Fields {
		value, present := raw[field.Name]
		if !present || value == nil {
			if field.Required {
				return nil, &Error{Kind: MissingField, Field: field.Name}
			}
			continue
		}
		normalized, err := checkField(field, field.Name, value)
		if err != nil {
			return nil, err
		}
		args[field.Name] = normalized
	}
	return args, nil
}

func checkField(field Field, path string, value any) (any, *Error) {
	switch field.Type {
	case String:
		str, ok := value.(string)
		if !ok {
			return nil, mismatch(path, "string", value)
		}
		if len(field.Enum) > 0 && !contains(field.Enum, str) {
			return nil, &Error{Kind: InvalidEnum, Field: path, Actual: str, Allowed: field.Enum}
		}
		if field.Pattern != "" {
			re, err := regexp.Compile(field.Pattern)
			if err == nil && !re.MatchString(str) {
				return nil, &Error{Kind: InvalidValue, Field: path, Expected: "value matching " + field.Pattern, Actual: str}
			}
		}
		return str, nil
	case Integer:
		n, ok := toInteger(value)
		if !ok {
			return nil, mismatch(path, "integer", value)
		}
		return n, nil
	case Boolean:
		b, ok := value.(bool)
		if !ok {
			return nil, mismatch(path, "boolean", value)
		}
		return b, nil
	case StringList:
		items, ok := toList(value)
		if !ok {
			return nil, mismatch(path, "array of strings", value)
		}
		if err := checkLength(field, path, len(items)); err != nil {
			return nil, err
		}
		out := make([]string, 0, len(items))
		for i, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, mismatch(fmt.Sprintf("%s[%d]", path, i), "string", item)
			}
			out = append(out, str)
		}
		return out, nil
	case Record:
		record, ok := value.(map[string]any)
		if !ok {
			return nil, mismatch(path, "object", value)
		}
		return checkRecord(field, path, record)
	case RecordList:
		items, ok := toList(value)
		if !ok {
			return nil, mismatch(path, "array of objects", value)
		}
		if err := checkLength(field, path, len(items)); err != nil {
			return nil, err
		}
		out := make([]map[string]any, 0, len(items))
		for i, item := range items {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, mismatch(fmt.Sprintf("%s[%d]", path, i), "object", item)
			}
			checked, err := checkRecord(field, fmt.Sprintf("%s[%d]", path, i), record)
			if err != nil {
				return nil, err
			}
			out = append(out, checked)
		}
		return out, nil
	case StringMap:
		mapping, ok := value.(map[string]any)
		if !ok {
			return nil, mismatch(path, "object of strings", value)
		}
		out := make(map[string]string, len(mapping))
		for key, item := range mapping {
			str, ok := item.(string)
			if !ok {
				return nil, mismatch(path+"."+key, "string", item)
			}
			out[key] = str
		}
		return out, nil
	case AnyMap:
		mapping, ok := value.(map[string]any)
		if !ok {
			return nil, mismatch(path, "object", value)
		}
		return mapping, nil
	default:
		return nil, mismatch(path, string(field.Type), value)
	}
}

// checkRecord validates declared member fields; undeclared keys are
// accepted and carried through, since records frequently wrap
// provider-passthrough attribute maps.
func checkRecord(field Field, path string, record map[string]any) (map[string]any, *Error) {
	out := make(map[string]any, len(record))
	for key, value := range record {
		out[key] = value
	}
	for _, member := range field.Fields {
		value, present := record[member.Name]
		if !present || value == nil {
			if member.Required {
				return nil, &Error{Kind: MissingField, Field: path + "." + member.Name}
			}
			continue
		}
		checked, err := checkField(member, path+"."+member.Name, value)
		if err != nil {
			return nil, err
		}
		out[member.Name] = checked
	}
	return out, nil
}

func checkLength(field Field, path string, n int) *Error {
	if field.MinItems > 0 && n < field.MinItems {
		return &Error{Kind: InvalidValue, Field: path, Expected: fmt.Sprintf("at least %d items", field.MinItems), Actual: fmt.Sprintf("%d", n)}
	}
	if field.MaxItems > 0 && n > field.MaxItems {
		return &Error{Kind: InvalidValue, Field: path, Expected: fmt.Sprintf("at most %d items", field.MaxItems), Actual: fmt.Sprintf("%d", n)}
	}
	return nil
}

func mismatch(path, expected string, value any) *Error {
	return &Error{Kind: TypeMismatch, Field: path, Expected: expected, Actual: typeName(value)}
}

func typeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// toInteger accepts the numeric encodings JSON decoding can produce.
func toInteger(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func toList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item)
		}
		return out, true
	case []map[string]any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item)
		}
		return out, true
	default:
		return nil, false
	}
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}

// Accessors over validated arguments.

func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

func (a Args) String(name string) string {
	if s, ok := a[name].(string); ok {
		return s
	}
	return ""
}

func (a Args) StringOr(name, fallback string) string {
	if s, ok := a[name].(string); ok && s != "" {
		return s
	}
	return fallback
}

func (a Args) Int(name string, fallback int) int {
	if n, ok := a[name].(int); ok {
		return n
	}
	return fallback
}

func (a Args) Bool(name string) bool {
	if b, ok := a[name].(bool); ok {
		return b
	}
	return false
}

func (a Args) StringSlice(name string) []string {
	if items, ok := a[name].([]string); ok {
		return items
	}
	return nil
}

func (a Args) StringMap(name string) map[string]string {
	if mapping, ok := a[name].(map[string]string); ok {
		return mapping
	}
	return nil
}

func (a Args) AnyMap(name string) map[string]any {
	if mapping, ok := a[name].(map[string]any); ok {
		return mapping
	}
	return nil
}

func (a Args) Records(name string) []map[string]any {
	if records, ok := a[name].([]map[string]any); ok {
		return records
	}
	return nil
}
