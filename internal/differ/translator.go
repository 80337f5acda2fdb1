package differ

import (
	"fmt"
	"strings"

	"github.com/wI2L/jsondiff"
)

func translateOperation(op jsondiff.Operation) string {
	path := strings.ToLower(op.Path)

	switch {
	case strings.HasPrefix(path, "/verification_status"):
		return fmt.Sprintf("Verification status changed to %v.", op.Value)
	case strings.HasPrefix(path, "/outcome"):
		return fmt.Sprintf("Solver outcome changed to %v.", op.Value)
	case strings.Contains(path, "compliance_score"):
		return fmt.Sprintf("Compliance score changed to %v.", op.Value)
	case strings.Contains(path, "verification_score"):
		return fmt.Sprintf("Formal property verification score changed to %v.", op.Value)
	case strings.Contains(path, "/per_constraint/"):
		return "Per-principle compliance changed: " + lastSegment(op.Path) + "."
	case strings.Contains(path, "/counterexample"):
		return "Counterexample model changed."
	case strings.Contains(path, "/summary/constraints"):
		return "Constraint counts changed."
	case strings.Contains(path, "/summary/variables"):
		return "Variable counts changed."
	case strings.Contains(path, "/solver_used"):
		return fmt.Sprintf("Solver adapter changed to %v.", op.Value)
	case strings.Contains(path, "/recommendations"):
		return "Recommendations changed."
	case strings.Contains(path, "/generated_at"):
		return "" // timestamps always differ, not a finding
	case strings.Contains(path, "/error_message"):
		return "Error message changed."
	default:
		return "Verification result field " + op.Path + " changed."
	}
}

func lastSegment(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

// SeverityLevel 0=info, 1=moderate, 2=critical
type SeverityLevel int

const (
	SeverityInfo SeverityLevel = iota
	SeverityModerate
	SeverityCritical
)

var severityNames = [...]string{"info", "moderate", "critical"}

// SeverityString renders a level for display and JSON output.
func SeverityString(s SeverityLevel) string {
	if s < SeverityInfo || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// GetSeverity classifies a translated change. Verdict flips are critical,
// score drift is moderate, everything else is informational.
func GetSeverity(path, translation string) SeverityLevel {
	p := strings.ToLower(path)
	switch {
	case strings.HasPrefix(p, "/verification_status"),
		strings.HasPrefix(p, "/outcome"),
		strings.Contains(p, "/overall_compliant"),
		strings.Contains(p, "/per_constraint/"):
		return SeverityCritical
	case strings.Contains(p, "score"),
		strings.Contains(p, "/counterexample"),
		strings.Contains(p, "/solver_used"),
		strings.Contains(p, "/error_message"):
		return SeverityModerate
	default:
		return SeverityInfo
	}
}
