package solver

import (
	"context"
	"sort"

	"github.com/crillab/gophersat/bf"

	"github.com/govproof/govproof/internal/compiler"
	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/parser"
)

// SATSolver checks satisfiability with gophersat. Constraints are lowered to
// boolean formulas; threshold and equality expressions become theory atoms
// whose assignments are validated after each SAT model, with infeasible
// combinations excluded by blocking clauses until a theory-consistent model
// is found or the formula is unsatisfiable.
type SATSolver struct {
	opts Options
}

func NewSAT(opts Options) *SATSolver {
	return &SATSolver{opts: opts.withDefaults()}
}

func (s *SATSolver) Name() string { return models.SolverSAT }

// translator lowers expressions for one check; it is never reused, which is
// what keeps solver contexts isolated between sessions.
type translator struct {
	theory *theoryTable
	vars   map[string]bool
}

func newTranslator() *translator {
	return &translator{theory: newTheoryTable(), vars: make(map[string]bool)}
}

func (tr *translator) formula(e logic.Expr) bf.Formula {
	switch x := e.(type) {
	case logic.Lit:
		if x.Value {
			return bf.True
		}
		return bf.False
	case logic.Var:
		tr.vars[x.V.Name] = true
		return bf.Var(x.V.Name)
	case logic.Not:
		return bf.Not(tr.formula(x.X))
	case logic.And:
		if len(x.Xs) == 0 {
			return bf.True
		}
		return bf.And(tr.subs(x.Xs)...)
	case logic.Or:
		if len(x.Xs) == 0 {
			return bf.False
		}
		return bf.Or(tr.subs(x.Xs)...)
	case logic.Implies:
		return bf.Implies(tr.formula(x.A), tr.formula(x.B))
	case logic.Cmp:
		a := tr.theory.cmpAtom(x)
		tr.vars[a.name] = true
		return bf.Var(a.name)
	case logic.Eq:
		a := tr.theory.eqAtom(x)
		tr.vars[a.name] = true
		return bf.Var(a.name)
	default:
		return bf.True
	}
}

func (tr *translator) subs(xs []logic.Expr) []bf.Formula {
	out := make([]bf.Formula, len(xs))
	for i, x := range xs {
		out[i] = tr.formula(x)
	}
	return out
}

// Check runs the lazy SMT loop over the conjunction of exprs.
func (s *SATSolver) Check(ctx context.Context, exprs []logic.Expr) models.SolverVerdict {
	tr := newTranslator()
	parts := make([]bf.Formula, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, tr.formula(e))
	}

	var f bf.Formula
	if len(parts) == 0 {
		f = bf.True
	} else {
		f = bf.And(parts...)
	}

	checkCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	for round := 0; round < s.opts.MaxTheoryRounds; round++ {
		model, timedOut := solveWithin(checkCtx, f)
		if timedOut {
			return models.SolverVerdict{Outcome: models.OutcomeUnknown, SolverUsed: s.Name()}
		}
		if model == nil {
			return models.SolverVerdict{Outcome: models.OutcomeUnsat, SolverUsed: s.Name()}
		}
		confl, witnesses := tr.theory.checkModel(model)
		if confl == nil {
			return models.SolverVerdict{
				Outcome:        models.OutcomeSat,
				Counterexample: tr.counterexample(model, witnesses),
				SolverUsed:     s.Name(),
			}
		}
		f = bf.And(f, blockingClause(confl))
	}

	// theory budget exhausted without a decision
	return models.SolverVerdict{Outcome: models.OutcomeUnknown, SolverUsed: s.Name()}
}

// blockingClause forbids the exact combination of theory literals that was
// found infeasible.
func blockingClause(c *conflict) bf.Formula {
	lits := make([]bf.Formula, len(c.lits))
	for i, l := range c.lits {
		if l.value {
			lits[i] = bf.Not(bf.Var(l.name))
		} else {
			lits[i] = bf.Var(l.name)
		}
	}
	if len(lits) == 1 {
		return lits[0]
	}
	return bf.Or(lits...)
}

// solveWithin runs bf.Solve honoring the context deadline. gophersat has no
// native cancellation, so a timed-out solve is abandoned to finish on its
// own goroutine.
func solveWithin(ctx context.Context, f bf.Formula) (map[string]bool, bool) {
	done := make(chan map[string]bool, 1)
	go func() {
		done <- bf.Solve(f)
	}()
	select {
	case m := <-done:
		return m, false
	case <-ctx.Done():
		return nil, true
	}
}

// counterexample maps each referenced variable to its assignment, with
// theory atoms reported under their readable description and witness values
// substituted for numeric and string variables.
func (tr *translator) counterexample(model map[string]bool, witnesses map[string]string) map[string]string {
	out := make(map[string]string)
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	sort.Strings(names)

	descByName := make(map[string]string)
	for _, a := range tr.theory.atoms {
		descByName[a.name] = a.desc
	}

	for _, name := range names {
		if !tr.vars[name] {
			continue // solver-internal auxiliary variable
		}
		key := name
		if desc, ok := descByName[name]; ok {
			key = desc
		}
		if model[name] {
			out[key] = "true"
		} else {
			out[key] = "false"
		}
	}
	for name, val := range witnesses {
		out[name] = val
	}
	return out
}

// CheckEntailment asserts the rules and the negation of each obligation: a
// satisfiable result is a counterexample to entailment, an unsatisfiable one
// means the obligations follow from the rules. An obligation over predicates
// the rules never mention cannot be contradicted by them and is vacuously
// entailed, unless a rule or obligation carries an explicit denial or
// contradiction marker; then every obligation is checked against the rules.
func (s *SATSolver) CheckEntailment(ctx context.Context, rules, obligations []parser.Clause) models.EntailmentVerdict {
	sess := compiler.NewSession()

	ruleSyms := make(map[string]bool)
	for _, r := range rules {
		collectSymbols(r, ruleSyms)
	}
	conflicted := hasConflictMarker(rules) || hasConflictMarker(obligations)

	exprs := make([]logic.Expr, 0, len(rules)+len(obligations))
	for _, r := range rules {
		exprs = append(exprs, sess.ClauseExpr(r))
	}

	negated := 0
	for _, o := range obligations {
		if !conflicted && !sharesSymbol(o, ruleSyms) {
			continue
		}
		exprs = append(exprs, logic.Not{X: sess.ClauseExpr(o)})
		negated++
	}
	if negated == 0 && !conflicted {
		return models.EntailmentVerdict{IsUnsatisfiable: true, SolverUsed: s.Name()}
	}

	verdict := s.Check(ctx, exprs)
	return entailmentFromVerdict(verdict)
}

// collectSymbols records the predicate and field names a clause refers to.
func collectSymbols(cl parser.Clause, into map[string]bool) {
	into[cl.Head.Name] = true
	for _, c := range cl.Body {
		if c.Kind == parser.CondAtom {
			into[c.Atom.Name] = true
		} else {
			into[c.Field] = true
		}
	}
}

func sharesSymbol(cl parser.Clause, syms map[string]bool) bool {
	if syms[cl.Head.Name] {
		return true
	}
	for _, c := range cl.Body {
		if c.Kind == parser.CondAtom {
			if syms[c.Atom.Name] {
				return true
			}
		} else if syms[c.Field] {
			return true
		}
	}
	return false
}

func hasConflictMarker(clauses []parser.Clause) bool {
	for _, cl := range clauses {
		if matchSentinel(cl.Raw) != "" {
			return true
		}
	}
	return false
}

func entailmentFromVerdict(v models.SolverVerdict) models.EntailmentVerdict {
	out := models.EntailmentVerdict{SolverUsed: v.SolverUsed, ErrorMessage: v.Error}
	switch v.Outcome {
	case models.OutcomeSat:
		out.IsSatisfiable = true
		out.CounterExample = v.Counterexample
	case models.OutcomeUnsat:
		out.IsUnsatisfiable = true
	default:
		if out.ErrorMessage == "" {
			out.ErrorMessage = "solver returned unknown; simplify the policy or increase the timeout"
		}
	}
	return out
}
