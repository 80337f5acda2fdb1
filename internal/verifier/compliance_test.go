package verifier

import (
	"context"
	"testing"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/solver"
)

func TestEvaluateCompliance_Empty(t *testing.T) {
	e := NewEvaluator(solver.NewSAT(solver.Options{}))
	report := e.EvaluateCompliance(context.Background(), nil)

	if report.ComplianceScore != 1.0 || !report.OverallCompliant {
		t.Errorf("empty set: score %v, compliant %v; want 1.0/true",
			report.ComplianceScore, report.OverallCompliant)
	}
	if len(report.PerConstraint) != 0 {
		t.Errorf("empty set produced entries: %v", report.PerConstraint)
	}
}

func TestEvaluateCompliance_TautologyCompliant(t *testing.T) {
	st := logic.NewSymbolTable()
	p := logic.Var{V: st.GetOrCreate("p", logic.KindBool)}

	e := NewEvaluator(solver.NewSAT(solver.Options{}))
	report := e.EvaluateCompliance(context.Background(), []logic.Constraint{
		logic.NewConstraint(logic.Implies{A: p, B: p}, "principle_taut", logic.CategoryConstitutional, 3),
	})

	if !report.PerConstraint["principle_taut"] {
		t.Errorf("tautology reported non-compliant")
	}
	if report.ComplianceScore != 1.0 {
		t.Errorf("score = %v, want 1.0", report.ComplianceScore)
	}
}

func TestEvaluateCompliance_ViolableNotCompliant(t *testing.T) {
	st := logic.NewSymbolTable()
	p := logic.Var{V: st.GetOrCreate("principle_privacy", logic.KindBool)}

	e := NewEvaluator(solver.NewSAT(solver.Options{}))
	report := e.EvaluateCompliance(context.Background(), []logic.Constraint{
		logic.NewConstraint(p, "principle_privacy", logic.CategoryConstitutional, 5),
	})

	if report.PerConstraint["principle_privacy"] {
		t.Errorf("violable assertion reported compliant")
	}
	if report.OverallCompliant {
		t.Errorf("overall compliant despite violation")
	}
	if report.ComplianceScore != 0 {
		t.Errorf("score = %v, want 0", report.ComplianceScore)
	}
}

func TestEvaluateCompliance_SharedSourceANDCombined(t *testing.T) {
	st := logic.NewSymbolTable()
	p := logic.Var{V: st.GetOrCreate("p", logic.KindBool)}

	e := NewEvaluator(solver.NewSAT(solver.Options{}))
	report := e.EvaluateCompliance(context.Background(), []logic.Constraint{
		logic.NewConstraint(logic.Implies{A: p, B: p}, "principle_x", logic.CategoryConstitutional, 3),
		logic.NewConstraint(p, "principle_x", logic.CategoryConstitutional, 5),
	})

	if report.PerConstraint["principle_x"] {
		t.Errorf("shared source id not AND-combined: one constraint is violable")
	}
	if report.ComplianceScore != 0.5 {
		t.Errorf("score = %v, want 0.5 (one of two constraints compliant)", report.ComplianceScore)
	}
}

func TestVerifyProperties(t *testing.T) {
	st := logic.NewSymbolTable()
	p := logic.Var{V: st.GetOrCreate("p", logic.KindBool)}

	e := NewEvaluator(solver.NewSAT(solver.Options{}))
	report := e.VerifyProperties(context.Background(), []logic.Constraint{
		logic.NewConstraint(logic.Implies{A: p, B: p}, "formal::consistency", logic.CategoryCompliance, 4),
		logic.NewConstraint(p, "formal::completeness", logic.CategoryCompliance, 5),
	})

	if !report.PerProperty["formal::consistency"] || report.PerProperty["formal::completeness"] {
		t.Errorf("per-property = %v", report.PerProperty)
	}
	if report.VerificationScore != 0.5 {
		t.Errorf("verification score = %v, want 0.5", report.VerificationScore)
	}

	empty := e.VerifyProperties(context.Background(), nil)
	if empty.VerificationScore != 1.0 {
		t.Errorf("empty property set score = %v, want 1.0", empty.VerificationScore)
	}
}

func TestRecommendations(t *testing.T) {
	compliant := models.ComplianceReport{ComplianceScore: 1.0, OverallCompliant: true}

	unsat := recommendations(models.SolverVerdict{Outcome: models.OutcomeUnsat}, compliant, models.SolverSAT)
	if len(unsat) != 1 {
		t.Errorf("unsat recommendations = %v", unsat)
	}

	failing := models.ComplianceReport{
		PerConstraint:   map[string]bool{"principle_a": false, "principle_b": true},
		ComplianceScore: 0.5,
	}
	sat := recommendations(models.SolverVerdict{Outcome: models.OutcomeSat}, failing, models.SolverFallback)
	if len(sat) != 3 {
		t.Fatalf("got %d recommendations, want 3 (verdict, failing list, fallback caveat)", len(sat))
	}
}
