package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/remap/internal/ast"
)

// Scenario defines a conformance test scenario: one input program, the
// options to transform it with, and what the transform must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Options is CUE source for the transform options. Empty means defaults.
	Options string `yaml:"options,omitempty"`

	// Input is the program, in the Babel/ESTree document form.
	Input yaml.Node `yaml:"input"`

	// Expect holds the expected pass counters or error.
	Expect Expect `yaml:"expect"`

	// Assertions validate the transformed program.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect specifies the outcome of the transform. Nil counters are not
// checked.
type Expect struct {
	Functions *int `yaml:"functions,omitempty"`
	Awaits    *int `yaml:"awaits,omitempty"`
	IIFEs     *int `yaml:"iifes,omitempty"`
	Annotated *int `yaml:"annotated,omitempty"`

	// Error is a substring of the expected transform error.
	Error string `yaml:"error,omitempty"`

	// Unsupported requires the error to be a wrapper refusal.
	Unsupported bool `yaml:"unsupported,omitempty"`
}

// Assertion validates the transformed program.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_contains": Text appears in the printed program
	// - "output_excludes": Text does not appear in the printed program
	// - "node_count": exactly Count nodes of Kind remain in the tree
	Type string `yaml:"type"`

	// Text is the source fragment (used by output_contains, output_excludes).
	Text string `yaml:"text,omitempty"`

	// Kind is a Babel node type name (used by node_count).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of nodes (used by node_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputExcludes = "output_excludes"
	AssertNodeCount      = "node_count"
)

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML. Returns an error if the document is
// malformed, contains unknown fields (typos), or is missing required fields.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", path, s.Name, prev)
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Input.Kind != yaml.MappingNode {
		return fmt.Errorf("input is required and must be a node object")
	}

	if s.Expect.Unsupported && s.Expect.Error == "" {
		return fmt.Errorf("expect.unsupported requires expect.error")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertOutputExcludes:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertNodeCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for node_count", index)
		}
		if ast.KindOf(a.Kind) == ast.KindInvalid {
			return fmt.Errorf("assertions[%d]: unknown node kind %q", index, a.Kind)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for node_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
