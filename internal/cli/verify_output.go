package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/govproof/govproof/internal/differ"
	"github.com/govproof/govproof/internal/models"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// FailOnLevel threshold for diff failure
type FailOnLevel string

const (
	FailOnCritical FailOnLevel = "critical"
	FailOnModerate FailOnLevel = "moderate"
	FailOnInfo     FailOnLevel = "info"
)

// ParseFailOnLevel from string
func ParseFailOnLevel(s string) (FailOnLevel, error) {
	switch strings.ToLower(s) {
	case "critical":
		return FailOnCritical, nil
	case "moderate":
		return FailOnModerate, nil
	case "info":
		return FailOnInfo, nil
	default:
		return "", fmt.Errorf("invalid fail-on level: %s (use critical, moderate, or info)", s)
	}
}

// ShouldFail checks limits
func (f FailOnLevel) ShouldFail(severity differ.SeverityLevel) bool {
	switch f {
	case FailOnCritical:
		return severity == differ.SeverityCritical
	case FailOnModerate:
		return severity >= differ.SeverityModerate
	case FailOnInfo:
		return true // all severities fail
	default:
		return severity == differ.SeverityCritical
	}
}

// RenderVerificationText formats one result for the terminal.
func RenderVerificationText(r *models.VerificationResult, fingerprint string) string {
	var b strings.Builder

	color, banner := statusBanner(r.VerificationStatus)
	fmt.Fprintf(&b, "%s%s%s  %s\n", color, banner, colorReset, r.PolicyID)

	if r.ErrorMessage != "" {
		fmt.Fprintf(&b, "  %serror:%s %s\n", colorRed, colorReset, r.ErrorMessage)
	}
	if r.Outcome != "" {
		fmt.Fprintf(&b, "  outcome:      %s\n", r.Outcome)
	}
	fmt.Fprintf(&b, "  variables:    %d\n", r.Summary.Variables)
	fmt.Fprintf(&b, "  constraints:  %d\n", r.Summary.Constraints)
	if len(r.Summary.ConstraintsByCategory) > 0 {
		cats := make([]string, 0, len(r.Summary.ConstraintsByCategory))
		for c := range r.Summary.ConstraintsByCategory {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Fprintf(&b, "    %-26s %d\n", c, r.Summary.ConstraintsByCategory[c])
		}
	}
	if r.Summary.SkippedClauses > 0 {
		fmt.Fprintf(&b, "  %sskipped clauses: %d%s\n", colorYellow, r.Summary.SkippedClauses, colorReset)
	}

	if r.Compliance != nil {
		fmt.Fprintf(&b, "  compliance:   %.2f", r.Compliance.ComplianceScore)
		if r.Compliance.OverallCompliant {
			fmt.Fprintf(&b, " %s(compliant)%s\n", colorGreen, colorReset)
		} else {
			fmt.Fprintf(&b, " %s(violations)%s\n", colorRed, colorReset)
		}
		for _, id := range sortedConstraintIDs(r.Compliance.PerConstraint) {
			if r.Compliance.PerConstraint[id] {
				fmt.Fprintf(&b, "    %s✓%s %s\n", colorGreen, colorReset, id)
			} else {
				fmt.Fprintf(&b, "    %s✗%s %s\n", colorRed, colorReset, id)
			}
		}
	}
	if r.Properties != nil && len(r.Properties.PerProperty) > 0 {
		fmt.Fprintf(&b, "  properties:   %.2f\n", r.Properties.VerificationScore)
		for _, id := range sortedConstraintIDs(r.Properties.PerProperty) {
			if r.Properties.PerProperty[id] {
				fmt.Fprintf(&b, "    %s✓%s %s\n", colorGreen, colorReset, id)
			} else {
				fmt.Fprintf(&b, "    %s✗%s %s\n", colorRed, colorReset, id)
			}
		}
	}

	if len(r.Counterexample) > 0 {
		fmt.Fprintf(&b, "  counterexample:\n")
		keys := make([]string, 0, len(r.Counterexample))
		for k := range r.Counterexample {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "    %s = %s\n", k, r.Counterexample[k])
		}
	}

	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  %s•%s %s\n", colorYellow, colorReset, rec)
	}

	fmt.Fprintf(&b, "  %ssolver: %s", colorGray, r.SolverUsed)
	if fingerprint != "" {
		fmt.Fprintf(&b, "  result: %s", fingerprint)
	}
	fmt.Fprintf(&b, "%s\n", colorReset)

	return b.String()
}

func statusBanner(status string) (string, string) {
	switch status {
	case models.StatusVerified:
		return colorGreen, "VERIFIED"
	case models.StatusReview:
		return colorYellow, "REVIEW"
	case models.StatusInconclusive:
		return colorYellow, "INCONCLUSIVE"
	default:
		return colorRed, "ERROR"
	}
}

func sortedConstraintIDs(m map[string]bool) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func getColorForSeverity(severity differ.SeverityLevel) string {
	switch severity {
	case differ.SeverityCritical:
		return colorRed
	case differ.SeverityModerate:
		return colorYellow
	default:
		return colorGray
	}
}
