package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/giovanni/movieschema/schema"
)

// ---- JSON Schema export ----

func TestJSONSchema_Properties(t *testing.T) {
	js := userSchema.JSONSchema()

	if js["type"] != "object" || js["title"] != "user" {
		t.Fatalf("unexpected root: %v", js)
	}

	props := js["properties"].(map[string]any)

	age := props["age"].(map[string]any)
	if age["type"] != string(schema.TypeInteger) || age["minimum"] != 0.0 || age["maximum"] != 120.0 {
		t.Errorf("age = %v", age)
	}

	score := props["score"].(map[string]any)
	if score["type"] != string(schema.TypeNumber) || score["default"] != 50.0 {
		t.Errorf("score = %v", score)
	}

	homepage := props["homepage"].(map[string]any)
	if homepage["format"] != "uri" {
		t.Errorf("url format should be exported as uri, got %v", homepage["format"])
	}

	tags := props["tags"].(map[string]any)
	if tags["type"] != "array" || tags["items"].(map[string]any)["type"] != "string" {
		t.Errorf("tags = %v", tags)
	}
}

func TestJSONSchema_Required(t *testing.T) {
	required := userSchema.JSONSchema()["required"].([]string)
	want := []string{"name", "email", "age", "tags"}
	if len(required) != len(want) {
		t.Fatalf("required = %v, want %v", required, want)
	}
	for i := range want {
		if required[i] != want[i] {
			t.Fatalf("required = %v, want %v", required, want)
		}
	}
}

func TestJSONSchema_PartialHasNoRequiredOrDefaults(t *testing.T) {
	js := userSchema.Partial().JSONSchema()
	if _, ok := js["required"]; ok {
		t.Error("partial schema must not list required fields")
	}
	score := js["properties"].(map[string]any)["score"].(map[string]any)
	if _, ok := score["default"]; ok {
		t.Error("partial schema must not carry defaults")
	}
}

func TestJSONSchemaIndent(t *testing.T) {
	b, err := userSchema.JSONSchemaIndent("", "  ")
	assertNoError(t, err)
	var m map[string]any
	assertNoError(t, json.Unmarshal(b, &m))
	if m["$schema"] != "http://json-schema.org/draft-07/schema#" {
		t.Errorf("$schema = %v", m["$schema"])
	}
}
