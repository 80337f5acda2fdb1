package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EnforcementStrict makes a principle unconditionally asserted.
const EnforcementStrict = "strict"

// PrinciplesDoc is the constitutional-principles YAML document.
type PrinciplesDoc struct {
	ConstitutionalPrinciples map[string]Principle             `yaml:"constitutional_principles"`
	GovernanceRequirements   map[string]GovernanceRequirement `yaml:"governance_requirements"`
}

// Principle declaration
type Principle struct {
	Description  string        `yaml:"description"`
	Requirements []Requirement `yaml:"requirements"`
	Enforcement  string        `yaml:"enforcement"`
}

// Requirement is either a scalar string ("audit_enabled",
// "privacy_score >= 0.95") or a typed mapping with metric/op/threshold or a
// bare condition name.
type Requirement struct {
	Raw       string
	Metric    string
	Op        string
	Threshold float64
	Condition string
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (r *Requirement) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		r.Raw = value.Value
		return nil
	case yaml.MappingNode:
		var m struct {
			Metric    string  `yaml:"metric"`
			Op        string  `yaml:"op"`
			Threshold float64 `yaml:"threshold"`
			Condition string  `yaml:"condition"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		r.Metric = m.Metric
		r.Op = m.Op
		r.Threshold = m.Threshold
		r.Condition = m.Condition
		return nil
	default:
		return fmt.Errorf("requirement must be a string or a mapping (line %d)", value.Line)
	}
}

// GovernanceRequirement declaration
type GovernanceRequirement struct {
	Description string  `yaml:"description"`
	Metric      string  `yaml:"metric"`
	Threshold   float64 `yaml:"threshold"`
}
