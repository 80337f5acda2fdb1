package compiler

import "github.com/govproof/govproof/internal/logic"

// Property source identifiers.
const (
	PropertyConsistency  = "formal::consistency"
	PropertyCompleteness = "formal::completeness"
)

const (
	priorityConsistency  = 4
	priorityCompleteness = 5
)

// GenerateProperties derives the two formal properties from the accumulated
// constraint set: consistency over access-control constraints and
// completeness over constitutional constraints. An empty source set makes the
// property vacuous and it is omitted.
func (s *Session) GenerateProperties() {
	s.Properties = s.Properties[:0]

	if ac := logic.FilterCategory(s.Constraints, logic.CategoryAccessControl); len(ac) > 0 {
		s.Properties = append(s.Properties, logic.NewConstraint(
			logic.And{Xs: logic.Exprs(ac)},
			PropertyConsistency, logic.CategoryCompliance, priorityConsistency))
	}
	if cp := logic.FilterCategory(s.Constraints, logic.CategoryConstitutional); len(cp) > 0 {
		s.Properties = append(s.Properties, logic.NewConstraint(
			logic.And{Xs: logic.Exprs(cp)},
			PropertyCompleteness, logic.CategoryCompliance, priorityCompleteness))
	}
}
