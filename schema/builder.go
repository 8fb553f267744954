package schema

// Constructors return required fields; use Optional or WithDefault to relax them.
// Modifiers take and return values so a table can be written as one literal:
//
//	schema.Object("movie",
//		schema.String("title").MinLength(1),
//		schema.Integer("year").Min(1900).Max(2024),
//	)

// String declares a string field.
func String(name string) FieldSchema {
	return FieldSchema{Name: name, Type: TypeString, Required: true, String: &StringConstraints{}}
}

// Integer declares a field holding a whole number.
func Integer(name string) FieldSchema {
	return FieldSchema{Name: name, Type: TypeInteger, Required: true, Number: &NumberConstraints{}}
}

// Number declares a field holding any finite number.
func Number(name string) FieldSchema {
	return FieldSchema{Name: name, Type: TypeNumber, Required: true, Number: &NumberConstraints{}}
}

// Array declares an array field whose elements must satisfy items.
func Array(name string, items FieldSchema) FieldSchema {
	items.Required = true
	return FieldSchema{Name: name, Type: TypeArray, Required: true, Array: &ArrayConstraints{Items: &items}}
}

// Enum declares a string restricted to values.
func Enum(name string, values ...string) FieldSchema {
	fs := String(name)
	fs.String.Enum = append([]string(nil), values...)
	return fs
}

// Optional marks the field as not required.
func (fs FieldSchema) Optional() FieldSchema {
	fs.Required = false
	return fs
}

// WithDefault makes the field optional and fills v when it is absent.
func (fs FieldSchema) WithDefault(v any) FieldSchema {
	fs.Required = false
	fs.Default = v
	return fs
}

// MinLength sets the minimum rune count of a string field.
func (fs FieldSchema) MinLength(n int) FieldSchema {
	sc := fs.stringConstraints()
	sc.MinLength = &n
	fs.String = sc
	return fs
}

// Format requires a string field to match a named format (see formats.go).
func (fs FieldSchema) Format(name string) FieldSchema {
	sc := fs.stringConstraints()
	sc.Format = name
	fs.String = sc
	return fs
}

// Min sets an inclusive lower bound.
func (fs FieldSchema) Min(n float64) FieldSchema {
	nc := fs.numberConstraints()
	nc.Minimum = &n
	fs.Number = nc
	return fs
}

// Max sets an inclusive upper bound.
func (fs FieldSchema) Max(n float64) FieldSchema {
	nc := fs.numberConstraints()
	nc.Maximum = &n
	fs.Number = nc
	return fs
}

// Positive requires the value to be strictly greater than zero.
func (fs FieldSchema) Positive() FieldSchema {
	zero := 0.0
	nc := fs.numberConstraints()
	nc.ExclusiveMin = &zero
	fs.Number = nc
	return fs
}

// RequiredMessage overrides the message reported when the field is absent.
func (fs FieldSchema) RequiredMessage(msg string) FieldSchema {
	fs.Messages.Required = msg
	return fs
}

// TypeMessage overrides the message reported on a type mismatch.
func (fs FieldSchema) TypeMessage(msg string) FieldSchema {
	fs.Messages.InvalidType = msg
	return fs
}

// FormatMessage overrides the message reported on a format failure.
func (fs FieldSchema) FormatMessage(msg string) FieldSchema {
	fs.Messages.Format = msg
	return fs
}

// The helpers below copy the constraint set so modifiers never write through
// a pointer shared with another FieldSchema value.

func (fs FieldSchema) stringConstraints() *StringConstraints {
	sc := StringConstraints{}
	if fs.String != nil {
		sc = *fs.String
	}
	return &sc
}

func (fs FieldSchema) numberConstraints() *NumberConstraints {
	nc := NumberConstraints{}
	if fs.Number != nil {
		nc = *fs.Number
	}
	return &nc
}
