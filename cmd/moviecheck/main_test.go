package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const matrixJSON = `{"title":"Matrix","year":1999,"director":"Wachowski","duration":136,"poster":"https://x.com/p.jpg","genre":["Action","Sci-Fi"]}`

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("MOVIECHECK_LOG_FORMAT", "json")
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func decodeReports(t *testing.T, out string) []map[string]any {
	t.Helper()
	var reports []map[string]any
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var r map[string]any
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode report: %v (%q)", err, out)
		}
		reports = append(reports, r)
	}
	return reports
}

func TestRun_ValidStdin(t *testing.T) {
	code, out, _ := runCLI(t, matrixJSON)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	reports := decodeReports(t, out)
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	result := reports[0]["result"].(map[string]any)
	if result["ok"] != true {
		t.Fatalf("result not ok: %v", result)
	}
	if rate := result["data"].(map[string]any)["rate"]; rate != 5.5 {
		t.Fatalf("rate = %v, want 5.5", rate)
	}
}

func TestRun_InvalidDocumentExitsOne(t *testing.T) {
	code, out, stderr := runCLI(t, matrixJSON+"\n"+`{"year":1800}`)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	reports := decodeReports(t, out)
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	second := reports[1]["result"].(map[string]any)
	if second["ok"] != false || len(second["errors"].([]any)) == 0 {
		t.Fatalf("second document should fail: %v", second)
	}
	if !strings.Contains(stderr, "document invalid") {
		t.Fatalf("expected warning in log, got %q", stderr)
	}
}

func TestRun_PartialFlag(t *testing.T) {
	code, out, _ := runCLI(t, `{"year":2000}`, "-partial")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	data := decodeReports(t, out)[0]["result"].(map[string]any)["data"].(map[string]any)
	if len(data) != 1 || data["year"] != float64(2000) {
		t.Fatalf("data = %v, want only year", data)
	}
}

func TestRun_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.yaml")
	doc := `title: Matrix
year: 1999
director: Wachowski
duration: 136
poster: https://x.com/p.jpg
genre: [Action]
---
title: Cats
year: 2019
director: Hooper
duration: 110
poster: not-a-url
genre: [Musical]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, _ := runCLI(t, "", "-in", "yaml", "-out", "yaml", path)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	dec := yaml.NewDecoder(strings.NewReader(out))
	var reports []report
	for {
		var r struct {
			Source   string `yaml:"source"`
			Document int    `yaml:"document"`
			Result   struct {
				OK     bool `yaml:"ok"`
				Errors []struct {
					Field string `yaml:"field"`
					Kind  string `yaml:"kind"`
				} `yaml:"errors"`
			} `yaml:"result"`
		}
		if err := dec.Decode(&r); err != nil {
			break
		}
		reports = append(reports, report{Source: r.Source, Document: r.Document})
		if r.Document == 1 {
			if r.Result.OK {
				t.Fatal("second YAML document should be invalid")
			}
			kinds := map[string]string{}
			for _, e := range r.Result.Errors {
				kinds[e.Field] = e.Kind
			}
			if kinds["poster"] != "invalid_format" || kinds["genre[0]"] != "invalid_enum" {
				t.Fatalf("unexpected errors: %v", r.Result.Errors)
			}
		} else if !r.Result.OK {
			t.Fatalf("first YAML document should be valid: %+v", r.Result)
		}
	}
	if len(reports) != 2 || reports[0].Source != "movies.yaml" {
		t.Fatalf("reports = %+v", reports)
	}
}

func TestRun_MaxYearFromEnv(t *testing.T) {
	t.Setenv("MOVIECHECK_MAX_YEAR", "2030")
	doc := strings.Replace(matrixJSON, "1999", "2026", 1)
	if code, _, _ := runCLI(t, doc); code != 0 {
		t.Fatalf("exit code = %d, want 0 with raised max year", code)
	}
}

func TestRun_PrintSchema(t *testing.T) {
	code, out, _ := runCLI(t, "", "-schema")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	var js map[string]any
	if err := json.Unmarshal([]byte(out), &js); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if js["title"] != "movie" {
		t.Fatalf("title = %v", js["title"])
	}
}

func TestRun_UsageErrors(t *testing.T) {
	if code, _, _ := runCLI(t, "", "-out", "csv"); code != 2 {
		t.Fatalf("bad -out: exit code = %d, want 2", code)
	}
	if code, _, _ := runCLI(t, "", filepath.Join(t.TempDir(), "missing.json")); code != 2 {
		t.Fatalf("missing file: exit code = %d, want 2", code)
	}
	if code, _, _ := runCLI(t, "{not json"); code != 2 {
		t.Fatalf("malformed json: exit code = %d, want 2", code)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_OutputWriteFailureExitsTwo(t *testing.T) {
	for _, out := range []string{"json", "yaml"} {
		t.Run(out, func(t *testing.T) {
			t.Setenv("MOVIECHECK_LOG_FORMAT", "json")
			var stderr bytes.Buffer
			code := run([]string{"-out", out}, strings.NewReader(matrixJSON), failingWriter{}, &stderr)
			if code != 2 {
				t.Fatalf("exit code = %d, want 2 (log: %s)", code, stderr.String())
			}
		})
	}
}

func TestRun_FlagOverridesInvalidEnvFormat(t *testing.T) {
	t.Setenv("MOVIECHECK_INPUT", "xml")
	if code, _, stderr := runCLI(t, matrixJSON, "-in", "json"); code != 0 {
		t.Fatalf("exit code = %d, want 0 (log: %s)", code, stderr)
	}
}
