package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind classifies a ValidationError.
type Kind string

const (
	KindRequired Kind = "required"       // field absent
	KindType     Kind = "invalid_type"   // wrong primitive type
	KindRange    Kind = "out_of_range"   // numeric bound or string length
	KindFormat   Kind = "invalid_format" // e.g. not a URL
	KindEnum     Kind = "invalid_enum"   // value outside the allowed set
)

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string // field path (e.g. "genre[1]"); "" for the root value
	Kind    Kind
	Message string // Human-readable reason
	Value   any    // The value that failed validation
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// ValidationErrors is the ordered list of violations found in one pass.
// It implements the error interface.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has returns true if there is at least one validation error for the given
// field or for one of its elements (field[i]).
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if within(e.Field, field) {
			return true
		}
	}
	return false
}

// HasKind is like Has but also requires the error to be of kind k.
func (ve ValidationErrors) HasKind(field string, k Kind) bool {
	for _, e := range ve {
		if e.Kind == k && within(e.Field, field) {
			return true
		}
	}
	return false
}

// For returns the subset of errors reported for field or its elements.
func (ve ValidationErrors) For(field string) ValidationErrors {
	var out ValidationErrors
	for _, e := range ve {
		if within(e.Field, field) {
			out = append(out, e)
		}
	}
	return out
}

func within(path, field string) bool {
	return path == field || strings.HasPrefix(path, field+"[")
}

var _ json.Marshaler = (ValidationErrors)(nil)

// MarshalJSON serialises ValidationErrors as a JSON array.
func (ve ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(ve.entries())
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (ve ValidationErrors) MarshalYAML() (any, error) {
	return ve.entries(), nil
}

type errorEntry struct {
	Field   string `json:"field" yaml:"field"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
}

func (ve ValidationErrors) entries() []errorEntry {
	entries := make([]errorEntry, len(ve))
	for i, e := range ve {
		entries[i] = errorEntry{Field: e.Field, Kind: e.Kind, Message: e.Message, Value: encodable(e.Value)}
	}
	return entries
}

// encodable replaces values encoding/json refuses to marshal.
func encodable(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return v
}
