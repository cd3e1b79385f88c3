package mcpserver

import (
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestArgString(t *testing.T) {
	args := map[string]any{"project_id": "42", "count": float64(3)}

	got, err := argString(args, "project_id")
	if err != nil {
		t.Fatalf("argString: %v", err)
	}
	if got != "42" {
		t.Errorf("got %q, want 42", got)
	}

	if _, err := argString(args, "missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := argString(args, "count"); err == nil {
		t.Error("expected error for non-string value")
	}
}

func TestArgIID(t *testing.T) {
	args := map[string]any{
		"merge_request_iid": float64(7),
		"fractional":        7.5,
		"text":              "7",
	}

	got, err := argIID(args, "merge_request_iid")
	if err != nil {
		t.Fatalf("argIID: %v", err)
	}
	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}

	if _, err := argIID(args, "missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := argIID(args, "fractional"); err == nil {
		t.Error("expected error for fractional value")
	}
	if _, err := argIID(args, "text"); err == nil {
		t.Error("expected error for string value")
	}
}

func TestArgLine(t *testing.T) {
	args := map[string]any{
		"line_number": "42",
		"words":       "forty-two",
	}

	got, err := argLine(args, "line_number")
	if err != nil {
		t.Fatalf("argLine: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}

	if _, err := argLine(args, "missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := argLine(args, "words"); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestArgVerbose(t *testing.T) {
	if argVerbose(map[string]any{}) {
		t.Error("absent verbose should default to false")
	}
	if !argVerbose(map[string]any{"verbose": true}) {
		t.Error("verbose true not read")
	}
	if argVerbose(map[string]any{"verbose": false}) {
		t.Error("verbose false read as true")
	}
	if argVerbose(map[string]any{"verbose": "yes"}) {
		t.Error("non-boolean verbose read as true")
	}
}

func TestSchemaErrorDetail_MissingProperty(t *testing.T) {
	schema, err := jsonschema.CompileString("test.json", `{
		"type": "object",
		"properties": {"x": {"type": "string"}},
		"required": ["x"]
	}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	vErr := schema.Validate(map[string]any{})
	if vErr == nil {
		t.Fatal("expected validation failure")
	}
	if got := schemaErrorDetail(vErr); got != "missing properties: 'x'" {
		t.Errorf("got %q", got)
	}
}

func TestSchemaErrorDetail_TypeMismatch(t *testing.T) {
	schema, err := jsonschema.CompileString("test.json", `{
		"type": "object",
		"properties": {"n": {"type": "number"}}
	}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	vErr := schema.Validate(map[string]any{"n": "seven"})
	if vErr == nil {
		t.Fatal("expected validation failure")
	}
	if got := schemaErrorDetail(vErr); got != "/n: expected number, but got string" {
		t.Errorf("got %q", got)
	}
}
