// Package movie validates movie records for create and update workflows.
//
// ValidateMovie checks a complete record and fills in defaults;
// ValidatePartialMovie checks only the fields that are present. Both return
// a schema.Result and never panic, and both are safe for concurrent use.
package movie

import (
	"github.com/giovanni/movieschema/schema"
)

// Genre is one of the fixed movie genres.
type Genre string

const (
	Action    Genre = "Action"
	Adventure Genre = "Adventure"
	Crime     Genre = "Crime"
	Comedy    Genre = "Comedy"
	Drama     Genre = "Drama"
	Fantasy   Genre = "Fantasy"
	Horror    Genre = "Horror"
	Thriller  Genre = "Thriller"
	SciFi     Genre = "Sci-Fi"
)

// Genres lists every accepted genre in declaration order.
var Genres = []Genre{Action, Adventure, Crime, Comedy, Drama, Fantasy, Horror, Thriller, SciFi}

const (
	MinYear     = 1900
	DefaultRate = 5.5

	// MaxYear is the upper bound used by Schema. NewSchema accepts another.
	MaxYear = 2024
)

var (
	// Schema is the full movie schema used by ValidateMovie.
	Schema = NewSchema(MaxYear)

	// PartialSchema is Schema with every field optional and no defaults.
	PartialSchema = Schema.Partial()
)

// NewSchema builds the movie schema with maxYear as the inclusive upper bound
// for year.
func NewSchema(maxYear int) *schema.ObjectSchema {
	genres := make([]string, len(Genres))
	for i, g := range Genres {
		genres[i] = string(g)
	}

	return schema.Object("movie",
		schema.String("title").
			MinLength(1).
			RequiredMessage("Movie title is required").
			TypeMessage("Movie title must be a string"),
		schema.Integer("year").Min(MinYear).Max(float64(maxYear)),
		schema.String("director"),
		schema.Integer("duration").Positive(),
		schema.Number("rate").Min(0).Max(10).WithDefault(DefaultRate),
		schema.String("poster").
			Format("url").
			FormatMessage("Poster must be a valid URL"),
		schema.Array("genre", schema.Enum("", genres...)),
	)
}

// ValidateMovie checks a complete movie record. On success Data holds the
// known fields with rate defaulted to 5.5 when absent.
func ValidateMovie(input any) schema.Result {
	return Schema.SafeParse(input)
}

// ValidatePartialMovie checks a partial record: absent fields are fine,
// present ones must satisfy the same constraints as in ValidateMovie.
func ValidatePartialMovie(input any) schema.Result {
	return PartialSchema.SafeParse(input)
}
