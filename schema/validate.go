package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// validateObject is the core validation pass. Every field is checked and
// violations are collected in field declaration order.
func validateObject(obj map[string]any, s *ObjectSchema) (map[string]any, ValidationErrors) {
	var errs ValidationErrors
	data := make(map[string]any, len(s.Fields))

	for _, fs := range s.Fields {
		v, present := obj[fs.Name]
		if !present {
			if fs.Required {
				errs = append(errs, ValidationError{
					Field:   fs.Name,
					Kind:    KindRequired,
					Message: message(fs.Messages.Required, "Required"),
				})
			} else if fs.Default != nil && !s.partial {
				data[fs.Name] = fs.Default
			}
			continue
		}

		fieldErrs := validateField(v, fs, fs.Name)
		if len(fieldErrs) == 0 {
			data[fs.Name] = canonical(v, fs)
		}
		errs = append(errs, fieldErrs...)
	}

	return data, errs
}

// validateField validates a single present value against its FieldSchema.
func validateField(v any, fs FieldSchema, path string) ValidationErrors {
	switch fs.Type {
	case TypeString:
		return validateString(v, fs, path)
	case TypeInteger, TypeNumber:
		return validateNumber(v, fs, path)
	case TypeArray:
		return validateArray(v, fs, path)
	}
	return nil
}

func validateString(v any, fs FieldSchema, path string) ValidationErrors {
	s, ok := asString(v)
	if !ok {
		return ValidationErrors{typeError(fs, path, "string", v)}
	}

	var errs ValidationErrors
	c := fs.String
	if c == nil {
		return errs
	}

	if c.MinLength != nil {
		if n := len([]rune(s)); n < *c.MinLength {
			errs = append(errs, ValidationError{
				Field:   path,
				Kind:    KindRange,
				Message: fmt.Sprintf("String must contain at least %d character(s)", *c.MinLength),
				Value:   s,
			})
		}
	}
	if c.Format != "" && !matchesFormat(c.Format, s) {
		errs = append(errs, ValidationError{
			Field:   path,
			Kind:    KindFormat,
			Message: message(fs.Messages.Format, "Invalid "+c.Format),
			Value:   s,
		})
	}
	if len(c.Enum) > 0 && !contains(c.Enum, s) {
		errs = append(errs, ValidationError{
			Field:   path,
			Kind:    KindEnum,
			Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quoteAll(c.Enum), s),
			Value:   s,
		})
	}

	return errs
}

func validateNumber(v any, fs FieldSchema, path string) ValidationErrors {
	n, ok := asFloat(v)
	if !ok || math.IsNaN(n) {
		return ValidationErrors{typeError(fs, path, "number", v)}
	}

	var errs ValidationErrors
	if fs.Type == TypeInteger && (math.IsInf(n, 0) || n != math.Trunc(n)) {
		// Bounds are still checked below, so 1899.5 reports both problems.
		errs = append(errs, typeError(fs, path, "integer", v))
	}

	c := fs.Number
	if c == nil {
		return errs
	}

	if c.Minimum != nil && n < *c.Minimum {
		errs = append(errs, ValidationError{
			Field:   path,
			Kind:    KindRange,
			Message: fmt.Sprintf("Number must be greater than or equal to %g", *c.Minimum),
			Value:   n,
		})
	}
	if c.ExclusiveMin != nil && n <= *c.ExclusiveMin {
		errs = append(errs, ValidationError{
			Field:   path,
			Kind:    KindRange,
			Message: fmt.Sprintf("Number must be greater than %g", *c.ExclusiveMin),
			Value:   n,
		})
	}
	if c.Maximum != nil && n > *c.Maximum {
		errs = append(errs, ValidationError{
			Field:   path,
			Kind:    KindRange,
			Message: fmt.Sprintf("Number must be less than or equal to %g", *c.Maximum),
			Value:   n,
		})
	}

	return errs
}

func validateArray(v any, fs FieldSchema, path string) ValidationErrors {
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return ValidationErrors{typeError(fs, path, "array", v)}
	}

	var errs ValidationErrors
	if fs.Array == nil || fs.Array.Items == nil {
		return errs
	}

	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		errs = append(errs, validateField(item, *fs.Array.Items, fmt.Sprintf("%s[%d]", path, i))...)
	}
	return errs
}

// canonical rewrites integral json.Numbers such as 2000.0 or 1e2 as plain
// digits so the data decodes into Go integer fields. Other values are kept.
func canonical(v any, fs FieldSchema) any {
	n, ok := v.(json.Number)
	if !ok || fs.Type != TypeInteger {
		return v
	}
	if _, err := n.Int64(); err == nil {
		return v
	}
	f, err := n.Float64()
	if err != nil {
		return v
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func typeError(fs FieldSchema, path, expected string, v any) ValidationError {
	return ValidationError{
		Field:   path,
		Kind:    KindType,
		Message: message(fs.Messages.InvalidType, fmt.Sprintf("Expected %s, received %s", expected, typeName(v))),
		Value:   v,
	}
}

func message(custom, generic string) string {
	if custom != "" {
		return custom
	}
	return generic
}

// asObject returns input as a field map. Values other than map[string]any
// are normalised through encoding/json so structs and typed maps work too.
func asObject(input any) (map[string]any, bool) {
	switch v := input.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, true
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return nil, false
	}
	var obj map[string]any
	if err := decodeJSON(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// decodeJSON keeps numbers as json.Number so integers survive exactly.
func decodeJSON(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dst)
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func asFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// typeName names the JSON type of v for "received ..." messages.
func typeName(v any) string {
	if v == nil {
		return "null"
	}
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil && f != math.Trunc(f) {
			return "float"
		}
		return "number"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		switch {
		case math.IsNaN(f):
			return "nan"
		case math.IsInf(f, 0) || f != math.Trunc(f):
			return "float"
		}
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return typeName(rv.Elem().Interface())
	}
	return rv.Kind().String()
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}
