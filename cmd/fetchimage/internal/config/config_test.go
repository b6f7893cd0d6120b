package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kean/FetchImage/pkg/pipeline"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fetchimage.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadOptional_MissingFile(t *testing.T) {
	m, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("missing manifest should not error: %v", err)
	}
	if len(m.Sources) != 0 {
		t.Errorf("expected empty manifest, got %+v", m)
	}
}

func TestLoadOptional_ParsesSources(t *testing.T) {
	dir := writeManifest(t, `
defaults:
  priority: low
  constrained: true
sources:
  - url: https://example.com/a.jpg
    low_data_url: https://example.com/a-low.jpg
    priority: high
  - url: https://example.com/b.png
`)

	m, err := LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}

	if !m.Defaults.Constrained {
		t.Error("expected constrained default")
	}
	if len(m.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(m.Sources))
	}

	req, err := m.Request(m.Sources[0])
	if err != nil {
		t.Fatal(err)
	}
	if req.URL != "https://example.com/a.jpg" || req.Priority != pipeline.PriorityHigh {
		t.Errorf("unexpected request: %+v", req)
	}

	// Second source falls back to the manifest default.
	req, err = m.Request(m.Sources[1])
	if err != nil {
		t.Fatal(err)
	}
	if req.Priority != pipeline.PriorityLow {
		t.Errorf("expected default priority low, got %v", req.Priority)
	}
}

func TestLoadOptional_RejectsSourceWithoutURL(t *testing.T) {
	dir := writeManifest(t, `
sources:
  - priority: high
`)
	if _, err := LoadOptional(dir); err == nil {
		t.Error("expected error for source without url")
	}
}

func TestLoadOptional_RejectsMalformedYAML(t *testing.T) {
	dir := writeManifest(t, "sources: [url: {")
	if _, err := LoadOptional(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]pipeline.Priority{
		"":          pipeline.PriorityNormal,
		"normal":    pipeline.PriorityNormal,
		"very_low":  pipeline.PriorityVeryLow,
		"low":       pipeline.PriorityLow,
		"High":      pipeline.PriorityHigh,
		"VERY_HIGH": pipeline.PriorityVeryHigh,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		if err != nil {
			t.Errorf("ParsePriority(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePriority(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}
