// Package verifier contains the compliance evaluator and the verification
// orchestrator, the external-facing surface of the pipeline.
package verifier

import (
	"context"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/solver"
)

// Evaluator tests constraints in isolation: each check asserts only the
// negation of one constraint in a fresh solver context. Unsat means the
// constraint cannot be violated on its own, which is what compliance means
// here.
type Evaluator struct {
	s solver.Solver
}

func NewEvaluator(s solver.Solver) *Evaluator {
	return &Evaluator{s: s}
}

// EvaluateCompliance runs the isolated negation check per constraint. The
// score is compliant/total, defined as 1.0 when there is nothing to
// evaluate. Constraints sharing a source id (a strict principle asserts two)
// are AND-combined in the per-constraint map.
func (e *Evaluator) EvaluateCompliance(ctx context.Context, cs []logic.Constraint) models.ComplianceReport {
	per := make(map[string]bool)
	compliant := 0
	for _, c := range cs {
		ok := e.compliant(ctx, c)
		if ok {
			compliant++
		}
		if prev, seen := per[c.SourceID]; seen {
			per[c.SourceID] = prev && ok
		} else {
			per[c.SourceID] = ok
		}
	}

	score := 1.0
	if len(cs) > 0 {
		score = float64(compliant) / float64(len(cs))
	}
	return models.ComplianceReport{
		PerConstraint:    per,
		ComplianceScore:  score,
		OverallCompliant: score == 1.0,
	}
}

// VerifyProperties applies the same isolated check to the derived formal
// properties.
func (e *Evaluator) VerifyProperties(ctx context.Context, props []logic.Constraint) models.PropertyReport {
	per := make(map[string]bool)
	verified := 0
	for _, p := range props {
		ok := e.compliant(ctx, p)
		per[p.SourceID] = ok
		if ok {
			verified++
		}
	}
	score := 1.0
	if len(props) > 0 {
		score = float64(verified) / float64(len(props))
	}
	return models.PropertyReport{PerProperty: per, VerificationScore: score}
}

func (e *Evaluator) compliant(ctx context.Context, c logic.Constraint) bool {
	verdict := e.s.Check(ctx, []logic.Expr{logic.Not{X: c.Expr}})
	return verdict.Outcome == models.OutcomeUnsat
}
