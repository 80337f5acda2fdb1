package logic

// PolicyCategory classifies where a constraint came from.
type PolicyCategory string

const (
	CategoryAccessControl  PolicyCategory = "ACCESS_CONTROL"
	CategoryGovernanceRule PolicyCategory = "GOVERNANCE_RULE"
	CategoryConstitutional PolicyCategory = "CONSTITUTIONAL_PRINCIPLE"
	CategoryCompliance     PolicyCategory = "COMPLIANCE_REQUIREMENT"
)

// Priority bounds for constraints.
const (
	MinPriority = 1
	MaxPriority = 5
)

// Constraint is one logical assertion with its provenance.
type Constraint struct {
	Expr     Expr
	SourceID string
	Category PolicyCategory
	Priority int
}

// NewConstraint clamps priority into the valid range.
func NewConstraint(expr Expr, sourceID string, category PolicyCategory, priority int) Constraint {
	if priority < MinPriority {
		priority = MinPriority
	}
	if priority > MaxPriority {
		priority = MaxPriority
	}
	return Constraint{Expr: expr, SourceID: sourceID, Category: category, Priority: priority}
}

// Exprs extracts the expressions of a constraint slice.
func Exprs(cs []Constraint) []Expr {
	out := make([]Expr, len(cs))
	for i, c := range cs {
		out[i] = c.Expr
	}
	return out
}

// FilterCategory returns the constraints of one category, preserving order.
func FilterCategory(cs []Constraint, cat PolicyCategory) []Constraint {
	var out []Constraint
	for _, c := range cs {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}
