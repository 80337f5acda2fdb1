package verifier

import (
	"fmt"
	"sort"

	"github.com/govproof/govproof/internal/models"
)

// recommendations renders human-readable guidance for the verdict.
func recommendations(verdict models.SolverVerdict, compliance models.ComplianceReport, solverName string) []string {
	var recs []string

	switch verdict.Outcome {
	case models.OutcomeUnsat:
		recs = append(recs, "unsat: the policy is formally verified; no assignment violates the asserted constraints")
	case models.OutcomeSat:
		recs = append(recs, "sat: the constraints can be violated; review the returned model for conflicts between rules and principles")
	default:
		recs = append(recs, "unknown: simplify the policy or retry with a longer solver timeout")
	}

	if !compliance.OverallCompliant {
		var failing []string
		for id, ok := range compliance.PerConstraint {
			if !ok {
				failing = append(failing, id)
			}
		}
		sort.Strings(failing)
		recs = append(recs, fmt.Sprintf("non-compliant principles: %v (compliance score %.2f)", failing, compliance.ComplianceScore))
	}

	if solverName == models.SolverFallback {
		recs = append(recs, "verdict produced by the deterministic fallback adapter; rerun with the SAT solver for a solver-backed answer")
	}
	return recs
}
