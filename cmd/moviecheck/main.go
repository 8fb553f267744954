// Command moviecheck validates movie records read from files or stdin and
// prints one tagged result per document.
//
//	moviecheck [-partial] [-in json|yaml] [-out json|yaml] [-schema] [file ...]
//
// Exit status is 0 when every document is valid, 1 when at least one is not,
// and 2 on usage or I/O errors.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/giovanni/movieschema/internal/config"
	"github.com/giovanni/movieschema/internal/logging"
	"github.com/giovanni/movieschema/movie"
	"github.com/giovanni/movieschema/schema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// report is what moviecheck prints for each document.
type report struct {
	Source   string        `json:"source" yaml:"source"`
	Document int           `json:"document" yaml:"document"`
	Result   schema.Result `json:"result" yaml:"result"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "moviecheck: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("moviecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	partial := fs.Bool("partial", false, "validate as a partial update (all fields optional)")
	printSchema := fs.Bool("schema", false, "print the JSON Schema and exit")
	fs.StringVar(&cfg.Input, "in", cfg.Input, "input format: json or yaml")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "moviecheck: %v\n", err)
		return 2
	}

	logger := logging.New(stderr, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	s := movie.Schema
	if cfg.MaxYear != movie.MaxYear {
		s = movie.NewSchema(cfg.MaxYear)
	}
	if *partial {
		s = s.Partial()
	}

	if *printSchema {
		out, err := s.JSONSchemaIndent("", "  ")
		if err != nil {
			logger.Error().Err(err).Msg("encode schema")
			return 2
		}
		fmt.Fprintln(stdout, string(out))
		return 0
	}

	enc := newEncoder(stdout, cfg.Output)

	c := checker{schema: s, input: cfg.Input, enc: enc, logger: logger}

	sources := fs.Args()
	if len(sources) == 0 {
		sources = []string{"-"}
	}
	for _, src := range sources {
		if err := c.checkSource(src, stdin); err != nil {
			logger.Error().Err(err).Str("source", src).Msg("read documents")
			enc.Close()
			return 2
		}
	}
	// The YAML encoder buffers output until Close.
	if err := enc.Close(); err != nil {
		logger.Error().Err(err).Msg("flush results")
		return 2
	}

	logger.Info().
		Int("documents", c.total).
		Int("invalid", c.invalid).
		Bool("partial", *partial).
		Msg("validation finished")

	if c.invalid > 0 {
		return 1
	}
	return 0
}

type checker struct {
	schema *schema.ObjectSchema
	input  string
	enc    encoder
	logger zerolog.Logger

	total   int
	invalid int
}

func (c *checker) checkSource(src string, stdin io.Reader) error {
	r := stdin
	name := "stdin"
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("open %s: %w", src, err)
		}
		defer f.Close()
		r = f
		name = filepath.Base(src)
	}

	next := newDecoder(r, c.input)
	for i := 0; ; i++ {
		var doc any
		err := next(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode %s document %d: %w", name, i, err)
		}

		res := c.schema.SafeParse(doc)
		c.total++

		l := logging.WithDocument(c.logger, name, i)
		if res.OK {
			l.Debug().Msg("document valid")
		} else {
			c.invalid++
			l.Warn().Int("violations", len(res.Errors)).Str("first", res.Errors[0].Error()).Msg("document invalid")
		}

		if err := c.enc.Encode(report{Source: name, Document: i, Result: res}); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
}

// newDecoder returns a function yielding successive documents of r, or
// io.EOF when there are none left.
func newDecoder(r io.Reader, format string) func(any) error {
	if strings.EqualFold(format, "yaml") {
		return yaml.NewDecoder(r).Decode
	}
	return json.NewDecoder(r).Decode
}

type encoder interface {
	Encode(v any) error
	Close() error
}

type jsonEncoder struct{ *json.Encoder }

func (jsonEncoder) Close() error { return nil }

func newEncoder(w io.Writer, format string) encoder {
	if strings.EqualFold(format, "yaml") {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc
	}
	return jsonEncoder{json.NewEncoder(w)}
}
