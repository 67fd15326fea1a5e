// Package testsupport holds fixtures and golden helpers shared by package
// tests.
package testsupport

import (
	"context"
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/normalize"
	"github.com/goliatone/go-formspec/pkg/source"
	"github.com/goliatone/go-formspec/pkg/validation"
)

//go:embed testdata/*
var fixtures embed.FS

// Fixture names shipped with the package.
const (
	FixtureEvent      = "event.json"
	FixturePoll       = "poll.yaml"
	FixtureDegenerate = "degenerate.json"
)

// MustReadFixture returns the raw bytes of a named fixture.
func MustReadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// LoadDocument wraps a fixture in a source.Document so format detection uses
// its extension.
func LoadDocument(t *testing.T, name string) source.Document {
	t.Helper()
	doc, err := source.NewDocument(source.FromFS(name), MustReadFixture(t, name))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

// MustDecode returns the generic value of a fixture, as handed to the
// validator.
func MustDecode(t *testing.T, name string) any {
	t.Helper()
	value, err := LoadDocument(t, name).Decode()
	if err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return value
}

// MustSpec decodes and validates a fixture, failing the test when it is
// rejected.
func MustSpec(t *testing.T, name string) model.FormSpecification {
	t.Helper()
	spec, result := validation.Default().Parse(MustDecode(t, name))
	if !result.Valid {
		t.Fatalf("fixture %s rejected: %s", name, result.Summary())
	}
	return spec
}

// MustForm returns the normalized form of a fixture.
func MustForm(t *testing.T, name string) *normalize.Form {
	t.Helper()
	return normalize.Normalize(MustSpec(t, name))
}

// MustReadGolden reads a golden fixture and returns its raw bytes.
func MustReadGolden(t *testing.T, name string) []byte {
	t.Helper()
	return MustReadFixture(t, name)
}

// CompareJSON marshals got and diffs it against the golden JSON, ignoring
// formatting. Returns an empty string when they match.
func CompareJSON(t *testing.T, golden []byte, got any) string {
	t.Helper()

	var want any
	if err := json.Unmarshal(golden, &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var have any
	if err := json.Unmarshal(raw, &have); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	return cmp.Diff(want, have)
}

// WriteMaybeGolden writes value as indented JSON to path when UPDATE_GOLDENS
// is set. Returns true if the golden was written and the test should stop.
func WriteMaybeGolden(t *testing.T, path string, value any) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
