package smtlib

import (
	"strings"
	"testing"

	"github.com/govproof/govproof/internal/logic"
)

func TestExport_Structure(t *testing.T) {
	st := logic.NewSymbolTable()
	admin := st.GetOrCreate("is_admin", logic.KindBool)
	allowed := st.GetOrCreate("access_allowed", logic.KindBool)
	score := st.GetOrCreate("trust_score", logic.KindReal)

	constraints := []logic.Constraint{
		logic.NewConstraint(
			logic.Implies{A: logic.Var{V: admin}, B: logic.Var{V: allowed}},
			"policy#0", logic.CategoryAccessControl, 1),
		logic.NewConstraint(
			logic.Cmp{V: score, Op: logic.OpGE, Threshold: 0.95},
			"principle_privacy", logic.CategoryConstitutional, 3),
	}

	out := Export(st, constraints)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	want := []string{
		"(set-logic QF_LIA)",
		"(declare-fun is_admin () Bool)",
		"(declare-fun access_allowed () Bool)",
		"(declare-fun trust_score () Real)",
		"; policy#0 [ACCESS_CONTROL p1]",
		"(assert (=> is_admin access_allowed))",
		"; principle_privacy [CONSTITUTIONAL_PRINCIPLE p3]",
		"(assert (>= trust_score 0.95))",
		"(check-sat)",
		"(exit)",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestExport_Empty(t *testing.T) {
	out := Export(logic.NewSymbolTable(), nil)
	want := "(set-logic QF_LIA)\n(check-sat)\n(exit)\n"
	if out != want {
		t.Errorf("empty export = %q, want %q", out, want)
	}
}

func TestTerm(t *testing.T) {
	st := logic.NewSymbolTable()
	a := logic.Var{V: st.GetOrCreate("a", logic.KindBool)}
	b := logic.Var{V: st.GetOrCreate("b", logic.KindBool)}
	role := st.GetOrCreate("role", logic.KindString)

	tests := []struct {
		name string
		expr logic.Expr
		want string
	}{
		{"lit", logic.Lit{Value: true}, "true"},
		{"not", logic.Not{X: a}, "(not a)"},
		{"and", logic.And{Xs: []logic.Expr{a, b}}, "(and a b)"},
		{"empty and", logic.And{}, "true"},
		{"single or", logic.Or{Xs: []logic.Expr{a}}, "a"},
		{"empty or", logic.Or{}, "false"},
		{"eq", logic.Eq{V: role, Value: "admin"}, `(= role "admin")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Term(tt.expr); got != tt.want {
				t.Errorf("Term() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExport_Deterministic(t *testing.T) {
	st := logic.NewSymbolTable()
	cs := []logic.Constraint{
		logic.NewConstraint(logic.Var{V: st.GetOrCreate("x", logic.KindBool)},
			"p#0", logic.CategoryAccessControl, 1),
	}
	first := Export(st, cs)
	for i := 0; i < 3; i++ {
		if again := Export(st, cs); again != first {
			t.Fatalf("export not deterministic")
		}
	}
}
