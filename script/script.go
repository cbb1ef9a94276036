// Package script defines YAML pointer-lifetime scenarios and a runner that
// executes them against live Strong and Weak pointers.
//
// A scenario is a named sequence of steps. Each step performs one pointer
// operation on named pointers, or asserts an expectation about one:
//
//	name: promote-after-reset
//	steps:
//	  - op: new
//	    ptr: a
//	    value: hello
//	  - op: clone
//	    ptr: b
//	    from: a
//	  - op: downgrade
//	    ptr: w
//	    from: a
//	  - op: reset
//	    ptr: a
//	  - op: expect
//	    ptr: w
//	    expired: false
//	  - op: lock
//	    ptr: l
//	    from: w
//	  - op: expect
//	    ptr: l
//	    equals: hello
//
// Scenarios drive the package's own tests and the ptrlab command.
package script

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/refptr/errors"
)

// Script is a named pointer-lifetime scenario.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is a single operation in a scenario. Which fields apply depends on Op;
// Validate enforces the per-operation requirements.
type Step struct {
	// Op selects the operation: new, weak, clone, move, assign, move-assign,
	// downgrade, lock, reset, release, expect.
	Op string `yaml:"op"`

	// Ptr names the pointer the step defines or acts on.
	Ptr string `yaml:"ptr"`

	// From names the source pointer for clone, move, assign, move-assign,
	// downgrade, and lock.
	From string `yaml:"from,omitempty"`

	// Value is the buffer content for new, weak, and reset. Absent means no
	// resource: new yields an empty pointer, reset empties the pointer.
	Value *string `yaml:"value,omitempty"`

	// Expectation fields for op expect.
	Expired *bool   `yaml:"expired,omitempty"`
	Empty   *bool   `yaml:"empty,omitempty"`
	Equals  *string `yaml:"equals,omitempty"`
}

// Parse decodes a YAML scenario document.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.ParseFailed("script", err)
	}
	return &s, nil
}

// Load reads and decodes a scenario file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseFailed(path, err)
	}
	return Parse(data)
}

// Validate checks the scenario:
// - Non-empty name and at least one step
// - Every op is recognized
// - Required fields are present per op
// - expect steps check at least one property
func (s *Script) Validate() error {
	if s.Name == "" {
		return errors.InvalidData("", 0, "script name is required")
	}
	if len(s.Steps) == 0 {
		return errors.InvalidData(s.Name, 0, "at least one step is required")
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(s.Name, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (st *Step) validate(script string, step int) error {
	if st.Ptr == "" {
		return errors.InvalidData(script, step, "ptr is required")
	}

	switch st.Op {
	case "new", "weak":
		// Value is optional: absent means an empty pointer.
	case "clone", "move", "assign", "move-assign", "downgrade", "lock":
		if st.From == "" {
			return errors.InvalidData(script, step, "from is required for "+st.Op)
		}
	case "reset", "release":
	case "expect":
		if st.Expired == nil && st.Empty == nil && st.Equals == nil {
			return errors.InvalidData(script, step, "expect needs expired, empty, or equals")
		}
	default:
		return errors.InvalidOp(script, step, st.Op)
	}
	return nil
}
