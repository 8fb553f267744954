package schema

// Type is the JSON primitive type a field must carry.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeArray   Type = "array"
)

// StringConstraints holds constraints applicable to string values.
type StringConstraints struct {
	MinLength *int
	Format    string   // "url", "uri", "email", "uuid"
	Enum      []string // allowed values
}

// NumberConstraints holds constraints applicable to numeric values
// (both integer and floating-point).
type NumberConstraints struct {
	Minimum      *float64
	Maximum      *float64
	ExclusiveMin *float64
}

// ArrayConstraints holds constraints applicable to array values.
type ArrayConstraints struct {
	Items *FieldSchema // schema for each element in the array
}

// Messages overrides the generic violation messages of a field.
// Empty strings fall back to the generic wording.
type Messages struct {
	Required    string
	InvalidType string
	Format      string
}

// FieldSchema is one entry of the constraint table.
type FieldSchema struct {
	Name     string
	Type     Type
	Required bool

	// Default is filled into the parsed data when the field is absent.
	// Only honoured by full (non-partial) schemas.
	Default any

	Messages Messages

	// At most one of the constraint sets below is non-nil, matching Type.
	String *StringConstraints
	Number *NumberConstraints
	Array  *ArrayConstraints
}

// ObjectSchema is an ordered constraint table for an object value.
// Field order is the order violations are reported in.
type ObjectSchema struct {
	Title  string
	Fields []FieldSchema

	partial bool
}

// Object builds an ObjectSchema from the given fields. The field slice is
// copied so later mutation by the caller cannot leak into the schema.
func Object(title string, fields ...FieldSchema) *ObjectSchema {
	return &ObjectSchema{
		Title:  title,
		Fields: append([]FieldSchema(nil), fields...),
	}
}

// Partial derives a schema in which every field is optional and no default
// is applied. Per-field predicates are kept as they are.
func (s *ObjectSchema) Partial() *ObjectSchema {
	fields := make([]FieldSchema, len(s.Fields))
	for i, fs := range s.Fields {
		fs.Required = false
		fs.Default = nil
		fields[i] = fs
	}
	return &ObjectSchema{Title: s.Title, Fields: fields, partial: true}
}

// IsPartial reports whether s was derived with Partial.
func (s *ObjectSchema) IsPartial() bool {
	return s.partial
}

// Field returns the entry named name.
func (s *ObjectSchema) Field(name string) (FieldSchema, bool) {
	for _, fs := range s.Fields {
		if fs.Name == name {
			return fs, true
		}
	}
	return FieldSchema{}, false
}
