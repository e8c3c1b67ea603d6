package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one evolution scenario: an ordered step sequence plus
// assertions over the resulting trace.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description"`

	// RunToken fixes the trace's run token. When empty a random token is
	// generated; golden scenarios must set it.
	RunToken string `yaml:"run_token,omitempty"`

	// Steps is the ordered step sequence. Each scenario runs against a
	// fresh, empty store log.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one scenario step. Exactly one of the members must be set.
type Step struct {
	Insert   *InsertStep   `yaml:"insert,omitempty"`
	ReadAll  *ReadAllStep  `yaml:"read_all,omitempty"`
	Check    *CheckStep    `yaml:"check,omitempty"`
	Exchange *ExchangeStep `yaml:"exchange,omitempty"`
}

// InsertStep encodes a value under a revision and appends it to the
// store log. Inserts cannot fail at the schema level: the log is
// schema-agnostic.
type InsertStep struct {
	// Record is the logical record name (e.g. "Greeting").
	Record string `yaml:"record"`

	// Revision selects the field set the value is encoded under.
	Revision string `yaml:"revision"`

	// Value supplies the record's fields. It must provide exactly the
	// revision's fields, no more and no fewer.
	Value map[string]string `yaml:"value"`
}

// ReadAllStep reads the whole log under one revision.
type ReadAllStep struct {
	Record   string `yaml:"record"`
	Revision string `yaml:"revision"`

	// Expect is the expected outcome: "ok", "missing_field:<name>" or
	// "malformed".
	Expect string `yaml:"expect"`
}

// CheckStep runs one directional compatibility check: encode the value
// under the Encode revision, decode under the Decode revision.
type CheckStep struct {
	Record string `yaml:"record"`
	Encode string `yaml:"encode"`
	Decode string `yaml:"decode"`

	// Value supplies the fields of the Encode revision.
	Value map[string]string `yaml:"value"`

	Expect string `yaml:"expect"`
}

// ExchangeStep runs one client/server round trip between named peer
// deployments (see registry.go for the available peers).
type ExchangeStep struct {
	Client string `yaml:"client"`
	Server string `yaml:"server"`

	// Name is the caller name carried in the request fixture.
	Name string `yaml:"name"`

	Expect string `yaml:"expect"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly, and required fields are validated.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and step shape before any step
// executes.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step Step) error {
	set := 0
	if step.Insert != nil {
		set++
	}
	if step.ReadAll != nil {
		set++
	}
	if step.Check != nil {
		set++
	}
	if step.Exchange != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one of insert, read_all, check, exchange is required", index)
	}

	switch {
	case step.Insert != nil:
		if step.Insert.Record == "" || step.Insert.Revision == "" {
			return fmt.Errorf("steps[%d].insert: record and revision are required", index)
		}
		if len(step.Insert.Value) == 0 {
			return fmt.Errorf("steps[%d].insert: value is required", index)
		}
	case step.ReadAll != nil:
		if step.ReadAll.Record == "" || step.ReadAll.Revision == "" {
			return fmt.Errorf("steps[%d].read_all: record and revision are required", index)
		}
		if step.ReadAll.Expect == "" {
			return fmt.Errorf("steps[%d].read_all: expect is required", index)
		}
	case step.Check != nil:
		c := step.Check
		if c.Record == "" || c.Encode == "" || c.Decode == "" {
			return fmt.Errorf("steps[%d].check: record, encode and decode are required", index)
		}
		if len(c.Value) == 0 {
			return fmt.Errorf("steps[%d].check: value is required", index)
		}
		if c.Expect == "" {
			return fmt.Errorf("steps[%d].check: expect is required", index)
		}
	case step.Exchange != nil:
		e := step.Exchange
		if e.Client == "" || e.Server == "" {
			return fmt.Errorf("steps[%d].exchange: client and server are required", index)
		}
		if e.Expect == "" {
			return fmt.Errorf("steps[%d].exchange: expect is required", index)
		}
	}
	return nil
}
