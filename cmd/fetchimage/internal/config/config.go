// Package config loads the optional fetchimage.yaml manifest that lists
// the image sources the demo CLI fetches.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kean/FetchImage/pkg/pipeline"
)

// Manifest represents the optional fetchimage.yaml configuration.
type Manifest struct {
	Defaults Defaults `yaml:"defaults"`
	Sources  []Source `yaml:"sources"`
}

// Defaults contains settings applied to every source unless overridden.
type Defaults struct {
	Priority    string `yaml:"priority,omitempty"`
	Constrained bool   `yaml:"constrained,omitempty"`
}

// Source describes one image to fetch.
type Source struct {
	URL        string `yaml:"url"`
	LowDataURL string `yaml:"low_data_url,omitempty"`
	Priority   string `yaml:"priority,omitempty"`
}

// LoadOptional reads fetchimage.yaml from dir if present.
// A missing file yields an empty manifest, not an error.
func LoadOptional(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "fetchimage.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("failed to read fetchimage.yaml: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse fetchimage.yaml: %w", err)
	}

	for i, src := range m.Sources {
		if strings.TrimSpace(src.URL) == "" {
			return nil, fmt.Errorf("fetchimage.yaml: sources[%d] has no url", i)
		}
	}

	return &m, nil
}

// Request builds the pipeline request for a source, applying defaults.
func (m *Manifest) Request(src Source) (pipeline.Request, error) {
	priority := src.Priority
	if priority == "" {
		priority = m.Defaults.Priority
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return pipeline.Request{}, err
	}
	req := pipeline.NewRequest(src.URL)
	req.Priority = p
	return req, nil
}

// ParsePriority converts a manifest priority string to a pipeline priority.
// The empty string means normal.
func ParsePriority(s string) (pipeline.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return pipeline.PriorityNormal, nil
	case "very_low", "verylow":
		return pipeline.PriorityVeryLow, nil
	case "low":
		return pipeline.PriorityLow, nil
	case "high":
		return pipeline.PriorityHigh, nil
	case "very_high", "veryhigh":
		return pipeline.PriorityVeryHigh, nil
	default:
		return pipeline.PriorityNormal, fmt.Errorf("unknown priority %q", s)
	}
}
