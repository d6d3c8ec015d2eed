// Package scenario runs declarative undo/redo scenarios against a set
// store. A scenario is a YAML document listing operations to apply and
// the state expected afterwards; the runner reports every divergence.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one declarative test document.
type Scenario struct {
	Name   string           `yaml:"name"`
	Steps  []Step           `yaml:"steps"`
	Expect map[string][]int `yaml:"expect"`
}

// Step is a single operation. Op selects the operation; the remaining
// fields parameterize it.
type Step struct {
	Op     string   `yaml:"op"`
	Key    string   `yaml:"key,omitempty"`
	Values []int    `yaml:"values,omitempty"`
	Keys   []string `yaml:"keys,omitempty"`
	Into   string   `yaml:"into,omitempty"`
	// Count repeats undo/redo steps; 0 means once.
	Count int `yaml:"count,omitempty"`
}

// Known step operations.
const (
	OpSet    = "set"
	OpRemove = "remove"
	OpMerge  = "merge"
	OpUndo   = "undo"
	OpRedo   = "redo"
	OpClear  = "clear"
)

// Parse decodes a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario has no name")
	}
	for i, step := range sc.Steps {
		if err := validateStep(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

// LoadFile reads and decodes the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func validateStep(step Step) error {
	switch step.Op {
	case OpSet:
		if step.Key == "" {
			return fmt.Errorf("set requires key")
		}
	case OpRemove:
		if step.Key == "" {
			return fmt.Errorf("remove requires key")
		}
	case OpMerge:
		if len(step.Keys) == 0 || step.Into == "" {
			return fmt.Errorf("merge requires keys and into")
		}
	case OpUndo, OpRedo, OpClear:
		// No parameters.
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}
