package schema

import (
	"encoding/json"
	"fmt"
)

// Result is the tagged outcome of SafeParse. Exactly one of Data (OK) or
// Errors (!OK) is populated.
type Result struct {
	OK     bool             `json:"ok" yaml:"ok"`
	Data   map[string]any   `json:"data,omitempty" yaml:"data,omitempty"`
	Errors ValidationErrors `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Err returns the violations as an error, or nil on success.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return r.Errors
}

// SafeParse checks input against s and never panics. Unknown keys are
// dropped from Data and absent fields with a default are filled in (full
// schemas only).
func (s *ObjectSchema) SafeParse(input any) Result {
	obj, ok := asObject(input)
	if !ok {
		return Result{Errors: ValidationErrors{{
			Field:   "",
			Kind:    KindType,
			Message: fmt.Sprintf("Expected object, received %s", typeName(input)),
		}}}
	}

	data, errs := validateObject(obj, s)
	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{OK: true, Data: data}
}

// Validate is SafeParse reduced to an error. It returns nil if all
// constraints pass, or a [ValidationErrors] value listing every violation.
func (s *ObjectSchema) Validate(input any) error {
	return s.SafeParse(input).Err()
}

// Parse decodes a JSON document and validates it. Numbers are kept as
// json.Number so integer checks are exact.
func (s *ObjectSchema) Parse(data []byte) (map[string]any, error) {
	var v any
	if err := decodeJSON(data, &v); err != nil {
		return nil, fmt.Errorf("movieschema: parse error: %w", err)
	}
	res := s.SafeParse(v)
	if !res.OK {
		return nil, res.Errors
	}
	return res.Data, nil
}

// Decode is like Parse but converts the validated data into T using its
// `json` tags.
//
//	m, err := schema.Decode[Movie](movieSchema, data)
func Decode[T any](s *ObjectSchema, data []byte) (T, error) {
	var v T
	fields, err := s.Parse(data)
	if err != nil {
		return v, err
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return v, fmt.Errorf("movieschema: encode validated data: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("movieschema: decode validated data: %w", err)
	}
	return v, nil
}

// MustDecode is like [Decode] but panics on any error (unmarshal or validation).
// Useful for hardcoded/test data that is known to be valid.
func MustDecode[T any](s *ObjectSchema, data []byte) T {
	v, err := Decode[T](s, data)
	if err != nil {
		panic("movieschema: MustDecode failed: " + err.Error())
	}
	return v
}

// ---- JSON Schema emitter ----

// JSONSchema returns the draft-07 representation of s as a map.
func (s *ObjectSchema) JSONSchema() map[string]any {
	required := []string{}
	properties := map[string]any{}

	for _, fs := range s.Fields {
		if fs.Required {
			required = append(required, fs.Name)
		}
		properties[fs.Name] = fieldSchemaToJSON(fs)
	}

	result := map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": properties,
	}
	if s.Title != "" {
		result["title"] = s.Title
	}
	if len(required) > 0 {
		result["required"] = required
	}
	return result
}

// JSONSchemaIndent is like JSONSchema but returns indented JSON bytes.
func (s *ObjectSchema) JSONSchemaIndent(prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(s.JSONSchema(), prefix, indent)
}

func fieldSchemaToJSON(fs FieldSchema) map[string]any {
	var m map[string]any

	switch fs.Type {
	case TypeString:
		m = stringSchemaToJSON(fs.String)
	case TypeInteger, TypeNumber:
		m = numberSchemaToJSON(fs.Number)
		m["type"] = string(fs.Type)
	case TypeArray:
		m = map[string]any{"type": "array"}
		if fs.Array != nil && fs.Array.Items != nil {
			m["items"] = fieldSchemaToJSON(*fs.Array.Items)
		}
	default:
		m = map[string]any{}
	}

	if fs.Default != nil {
		m["default"] = fs.Default
	}
	return m
}

func stringSchemaToJSON(c *StringConstraints) map[string]any {
	m := map[string]any{"type": "string"}
	if c == nil {
		return m
	}
	if c.MinLength != nil {
		m["minLength"] = *c.MinLength
	}
	if c.Format != "" {
		// JSON Schema has no "url" format; "uri" is the closest.
		if c.Format == "url" {
			m["format"] = "uri"
		} else {
			m["format"] = c.Format
		}
	}
	if len(c.Enum) > 0 {
		m["enum"] = c.Enum
	}
	return m
}

func numberSchemaToJSON(c *NumberConstraints) map[string]any {
	m := map[string]any{}
	if c == nil {
		return m
	}
	if c.Minimum != nil {
		m["minimum"] = *c.Minimum
	}
	if c.Maximum != nil {
		m["maximum"] = *c.Maximum
	}
	if c.ExclusiveMin != nil {
		m["exclusiveMinimum"] = *c.ExclusiveMin
	}
	return m
}
