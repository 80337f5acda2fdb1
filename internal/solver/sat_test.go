package solver

import (
	"context"
	"strconv"
	"testing"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/parser"
)

func TestSATCheck_Satisfiable(t *testing.T) {
	st := logic.NewSymbolTable()
	a := logic.Var{V: st.GetOrCreate("access_allowed", logic.KindBool)}

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{a})

	if v.Outcome != models.OutcomeSat {
		t.Fatalf("Outcome = %q, want sat", v.Outcome)
	}
	if v.SolverUsed != models.SolverSAT {
		t.Errorf("SolverUsed = %q", v.SolverUsed)
	}
	if v.Counterexample["access_allowed"] != "true" {
		t.Errorf("counterexample = %v, want access_allowed=true", v.Counterexample)
	}
}

func TestSATCheck_Unsatisfiable(t *testing.T) {
	st := logic.NewSymbolTable()
	a := logic.Var{V: st.GetOrCreate("x", logic.KindBool)}

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{a, logic.Not{X: a}})

	if v.Outcome != models.OutcomeUnsat {
		t.Errorf("Outcome = %q, want unsat", v.Outcome)
	}
	if len(v.Counterexample) != 0 {
		t.Errorf("unsat verdict carries counterexample: %v", v.Counterexample)
	}
}

func TestSATCheck_EmptyDisjunctionUnsat(t *testing.T) {
	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{logic.Or{}})
	if v.Outcome != models.OutcomeUnsat {
		t.Errorf("Outcome = %q, want unsat for empty disjunction", v.Outcome)
	}
}

func TestSATCheck_ThresholdConflict(t *testing.T) {
	st := logic.NewSymbolTable()
	score := st.GetOrCreate("trust_score", logic.KindReal)

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{
		logic.Cmp{V: score, Op: logic.OpGE, Threshold: 5},
		logic.Cmp{V: score, Op: logic.OpLT, Threshold: 3},
	})
	if v.Outcome != models.OutcomeUnsat {
		t.Errorf("Outcome = %q, want unsat (5 <= x < 3 is empty)", v.Outcome)
	}
}

func TestSATCheck_ThresholdWitness(t *testing.T) {
	st := logic.NewSymbolTable()
	score := st.GetOrCreate("trust_score", logic.KindReal)

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{
		logic.Cmp{V: score, Op: logic.OpGE, Threshold: 5},
	})
	if v.Outcome != models.OutcomeSat {
		t.Fatalf("Outcome = %q, want sat", v.Outcome)
	}
	if v.Counterexample["trust_score >= 5"] != "true" {
		t.Errorf("counterexample missing the comparison literal: %v", v.Counterexample)
	}
	w, err := strconv.ParseFloat(v.Counterexample["trust_score"], 64)
	if err != nil || w < 5 {
		t.Errorf("witness trust_score = %q, want a value >= 5", v.Counterexample["trust_score"])
	}
}

func TestSATCheck_CompatibleThresholds(t *testing.T) {
	st := logic.NewSymbolTable()
	score := st.GetOrCreate("score", logic.KindReal)

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{
		logic.Cmp{V: score, Op: logic.OpGE, Threshold: 0.9},
		logic.Cmp{V: score, Op: logic.OpLE, Threshold: 0.95},
	})
	if v.Outcome != models.OutcomeSat {
		t.Fatalf("Outcome = %q, want sat", v.Outcome)
	}
	w, err := strconv.ParseFloat(v.Counterexample["score"], 64)
	if err != nil || w < 0.9 || w > 0.95 {
		t.Errorf("witness score = %q, want a value in [0.9, 0.95]", v.Counterexample["score"])
	}
}

func TestSATCheck_StringEqualityConflict(t *testing.T) {
	st := logic.NewSymbolTable()
	role := st.GetOrCreate("role", logic.KindString)

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{
		logic.Eq{V: role, Value: "admin"},
		logic.Eq{V: role, Value: "viewer"},
	})
	if v.Outcome != models.OutcomeUnsat {
		t.Errorf("Outcome = %q, want unsat (one variable, two values)", v.Outcome)
	}
}

func TestSATCheck_StringEqualityWitness(t *testing.T) {
	st := logic.NewSymbolTable()
	role := st.GetOrCreate("role", logic.KindString)

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{
		logic.Eq{V: role, Value: "admin"},
	})
	if v.Outcome != models.OutcomeSat {
		t.Fatalf("Outcome = %q, want sat", v.Outcome)
	}
	if v.Counterexample["role"] != "admin" {
		t.Errorf("witness role = %q, want admin", v.Counterexample["role"])
	}
}

func TestSATCheck_NegatedEqualitiesCoexist(t *testing.T) {
	st := logic.NewSymbolTable()
	role := st.GetOrCreate("role", logic.KindString)

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{
		logic.Eq{V: role, Value: "admin"},
		logic.Not{X: logic.Eq{V: role, Value: "viewer"}},
	})
	if v.Outcome != models.OutcomeSat {
		t.Errorf("Outcome = %q, want sat (equal to one value, unequal to another)", v.Outcome)
	}
}

func TestSATCheck_ImplicationChain(t *testing.T) {
	st := logic.NewSymbolTable()
	admin := logic.Var{V: st.GetOrCreate("is_admin", logic.KindBool)}
	allowed := logic.Var{V: st.GetOrCreate("access_allowed", logic.KindBool)}

	s := NewSAT(Options{})
	v := s.Check(context.Background(), []logic.Expr{
		logic.Implies{A: admin, B: allowed},
		admin,
		logic.Not{X: allowed},
	})
	if v.Outcome != models.OutcomeUnsat {
		t.Errorf("Outcome = %q, want unsat (modus ponens violated)", v.Outcome)
	}
}

func entailClauses(t *testing.T, lines []string) []parser.Clause {
	t.Helper()
	res := parser.ParseClauses(context.Background(), lines)
	if res.Skipped != 0 {
		t.Fatalf("fixture clauses skipped: %d", res.Skipped)
	}
	return res.Clauses
}

func TestSATCheckEntailment_Entailed(t *testing.T) {
	rules := entailClauses(t, []string{
		"has_role(u, admin).",
		"access_allowed(u) :- has_role(u, admin).",
	})
	obligations := entailClauses(t, []string{"access_allowed(u)."})

	s := NewSAT(Options{})
	v := s.CheckEntailment(context.Background(), rules, obligations)
	if !v.IsUnsatisfiable || v.IsSatisfiable {
		t.Errorf("verdict = %+v, want unsatisfiable (obligation follows)", v)
	}
}

func TestSATCheckEntailment_NotEntailed(t *testing.T) {
	rules := entailClauses(t, []string{
		"access_allowed(u) :- has_role(u, admin).",
	})
	obligations := entailClauses(t, []string{"access_allowed(u)."})

	s := NewSAT(Options{})
	v := s.CheckEntailment(context.Background(), rules, obligations)
	if !v.IsSatisfiable {
		t.Fatalf("verdict = %+v, want satisfiable (nothing forces the premise)", v)
	}
	if len(v.CounterExample) == 0 {
		t.Errorf("satisfiable verdict carries no counterexample")
	}
}

func TestSATCheckEntailment_SelfEntailment(t *testing.T) {
	rules := entailClauses(t, []string{"p."})
	obligations := entailClauses(t, []string{"p."})

	s := NewSAT(Options{})
	v := s.CheckEntailment(context.Background(), rules, obligations)
	if !v.IsUnsatisfiable {
		t.Errorf("verdict = %+v, want unsatisfiable (a fact entails itself)", v)
	}
}

func TestSATCheckEntailment_UnrelatedObligationVacuouslyEntailed(t *testing.T) {
	rules := entailClauses(t, []string{
		"access_allowed(User,Resource) :- has_role(User,admin).",
		"has_role(alice,admin).",
	})
	obligations := entailClauses(t, []string{"ensure_role_based_access_for_principle_1."})

	s := NewSAT(Options{})
	v := s.CheckEntailment(context.Background(), rules, obligations)
	if !v.IsUnsatisfiable || v.IsSatisfiable {
		t.Errorf("verdict = %+v, want unsatisfiable (no rule mentions the obligation)", v)
	}
}

func TestSATCheckEntailment_DenialRuleDefeatsObligation(t *testing.T) {
	rules := entailClauses(t, []string{"access_denied(User,Resource) :- true."})
	obligations := entailClauses(t, []string{"ensure_role_based_access_for_principle_1."})

	s := NewSAT(Options{})
	v := s.CheckEntailment(context.Background(), rules, obligations)
	if !v.IsSatisfiable {
		t.Fatalf("verdict = %+v, want satisfiable (denial rule defeats the obligation)", v)
	}
	if len(v.CounterExample) == 0 {
		t.Errorf("satisfiable verdict carries no counterexample")
	}
}

func TestSATCheckEntailment_MixedObligations(t *testing.T) {
	rules := entailClauses(t, []string{
		"has_role(u, admin).",
		"access_allowed(u) :- has_role(u, admin).",
	})
	obligations := entailClauses(t, []string{
		"access_allowed(u).",
		"audit_trail_retained.",
	})

	s := NewSAT(Options{})
	v := s.CheckEntailment(context.Background(), rules, obligations)
	if !v.IsUnsatisfiable {
		t.Errorf("verdict = %+v, want unsatisfiable (entailed plus vacuous obligation)", v)
	}
}
