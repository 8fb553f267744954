package movie

import "github.com/giovanni/movieschema/schema"

// Movie is a validated movie record.
type Movie struct {
	Title    string  `json:"title" yaml:"title"`
	Year     int     `json:"year" yaml:"year"`
	Director string  `json:"director" yaml:"director"`
	Duration int     `json:"duration" yaml:"duration"`
	Rate     float64 `json:"rate" yaml:"rate"`
	Poster   string  `json:"poster" yaml:"poster"`
	Genre    []Genre `json:"genre" yaml:"genre"`
}

// Patch carries the fields of a partial update; nil means "leave as is".
type Patch struct {
	Title    *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Year     *int     `json:"year,omitempty" yaml:"year,omitempty"`
	Director *string  `json:"director,omitempty" yaml:"director,omitempty"`
	Duration *int     `json:"duration,omitempty" yaml:"duration,omitempty"`
	Rate     *float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	Poster   *string  `json:"poster,omitempty" yaml:"poster,omitempty"`
	Genre    []Genre  `json:"genre,omitempty" yaml:"genre,omitempty"`
}

// Parse decodes a JSON movie record and validates it with ValidateMovie.
// Violations are returned as schema.ValidationErrors.
func Parse(raw []byte) (Movie, error) {
	return schema.Decode[Movie](Schema, raw)
}

// ParsePartial decodes a JSON partial record and validates it with
// ValidatePartialMovie.
func ParsePartial(raw []byte) (Patch, error) {
	return schema.Decode[Patch](PartialSchema, raw)
}

// Apply returns m with every field set in p overwritten.
func (m Movie) Apply(p Patch) Movie {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Year != nil {
		m.Year = *p.Year
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.Rate != nil {
		m.Rate = *p.Rate
	}
	if p.Poster != nil {
		m.Poster = *p.Poster
	}
	if p.Genre != nil {
		m.Genre = append([]Genre(nil), p.Genre...)
	}
	return m
}
