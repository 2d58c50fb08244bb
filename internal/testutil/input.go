package testutil

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TestInput represents a parsed test input file.
type TestInput struct {
	Context  map[string]any // YAML context variables
	Settings *TestSettings  // Optional $settings from context
	Template string         // Template source after ---
}

// TestSettings represents the $settings field in test inputs.
type TestSettings struct {
	HTML          bool  `yaml:"html"`
	MaxDepth      *int  `yaml:"max_depth"`
	ContainerCap  int   `yaml:"container_cap"`
	IncludeFields *bool `yaml:"include_fields"`
}

// ParseTestInputFile reads and parses a test input file.
func ParseTestInputFile(path string) (*TestInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTestInput(string(content))
}

// ParseTestInput parses test input content.
// Format: YAML context\n---\ntemplate
func ParseTestInput(content string) (*TestInput, error) {
	input := &TestInput{
		Context: make(map[string]any),
	}

	parts := strings.SplitN(content, "\n---\n", 2)

	if len(parts) >= 1 && strings.TrimSpace(parts[0]) != "" {
		var raw struct {
			Settings *TestSettings `yaml:"$settings"`
		}
		if err := yaml.Unmarshal([]byte(parts[0]), &raw); err != nil {
			return nil, err
		}
		input.Settings = raw.Settings

		if err := yaml.Unmarshal([]byte(parts[0]), &input.Context); err != nil {
			return nil, err
		}
		// $settings configures the dumper, it is not a template variable
		delete(input.Context, "$settings")
	}

	if len(parts) >= 2 {
		input.Template = parts[1]
	}

	return input, nil
}

// GlobTestInputs finds all test input files matching a pattern.
func GlobTestInputs(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}
