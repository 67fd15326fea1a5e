package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formspec/pkg/renderers/tui"
)

const specJSON = `{
  "title": "Workshop",
  "description": "Registration",
  "sections": [
    {"title": "Who", "fields": [
      {"label": "Name", "type": "text", "required": true},
      {"label": "Track", "type": "select", "options": [{"label": "Go", "goTo": "Go track"}, "Rust"]}
    ]},
    {"title": "Go track", "conditions": [{"fieldId": "Track", "equals": "Go"}], "fields": [
      {"label": "Experience", "type": "rating"}
    ]}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestValidateCommand(t *testing.T) {
	spec := writeFile(t, "spec.json", specJSON)
	out, _, err := run(t, "validate", spec)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "is valid (sectioned, 2 section(s), 1 conditional)") {
		t.Fatalf("unexpected output %q", out)
	}

	bad := writeFile(t, "bad.yaml", "title: Broken\ndescription: x\nfields:\n  - label: Q\n    type: Text\n")
	_, errOut, err := run(t, "validate", bad)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(errOut, "fields[0].type") {
		t.Fatalf("expected field path in output, got %q", errOut)
	}
}

func TestNormalizeCommand(t *testing.T) {
	spec := writeFile(t, "spec.json", specJSON)
	out, _, err := run(t, "normalize", spec)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded["mode"] != "sectioned" {
		t.Fatalf("unexpected mode %v", decoded["mode"])
	}
}

func TestPreviewCommand(t *testing.T) {
	spec := writeFile(t, "spec.json", specJSON)
	answers := writeFile(t, "answers.yaml", "Track: Rust\n")
	target := filepath.Join(t.TempDir(), "out.html")

	_, errOut, err := run(t, "preview", spec, "--answers", answers, "--token", "brand=#123456", "-o", target)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(errOut, "Preview written to") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
	html, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read preview: %v", err)
	}
	for _, want := range []string{`data-visibility="hidden"`, "--formspec-brand: #123456;"} {
		if !strings.Contains(string(html), want) {
			t.Fatalf("expected %q in preview", want)
		}
	}

	if _, _, err := run(t, "preview", spec, "--token", "novalue"); err == nil {
		t.Fatalf("expected invalid token error")
	}
}

func TestExportCommand(t *testing.T) {
	spec := writeFile(t, "spec.json", specJSON)
	out, errOut, err := run(t, "export", spec)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, `"updateFormInfo"`) || !strings.Contains(out, `"DROP_DOWN"`) {
		t.Fatalf("unexpected batch output %s", out)
	}
	if !strings.Contains(errOut, "conditional visibility") {
		t.Fatalf("expected warning on stderr, got %q", errOut)
	}

	out, _, err = run(t, "export", spec, "--openapi")
	if err != nil {
		t.Fatalf("export openapi: %v", err)
	}
	if !strings.Contains(out, `"/responses"`) {
		t.Fatalf("expected responses path in %s", out)
	}
}

type scriptedDriver struct {
	inputs  []string
	selects []int
}

func (s *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, nil
}

func (s *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, nil
}

func (s *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", nil
}

func (s *scriptedDriver) Info(context.Context, string) error { return nil }

func TestAnswerCommand(t *testing.T) {
	spec := writeFile(t, "spec.json", specJSON)

	previous := driverFactory
	driverFactory = func(*cobra.Command) tui.PromptDriver {
		return &scriptedDriver{inputs: []string{"Ada"}, selects: []int{0, 4}}
	}
	t.Cleanup(func() { driverFactory = previous })

	out, _, err := run(t, "answer", spec, "--format", "pretty", "--validate")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	want := "Experience=5\nName=Ada\nTrack=Go\n"
	if out != want {
		t.Fatalf("unexpected answers %q, want %q", out, want)
	}
}
