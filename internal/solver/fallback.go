package solver

import (
	"context"
	"strings"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/parser"
)

// Fallback is the deterministic rule-based stand-in used when real solving is
// disabled. It flags satisfiability only for inputs containing sentinel
// substrings that mark an explicit denial or contradiction; everything else
// is reported unsatisfiable. Verdicts carry solver_used = "fallback" so
// downstream consumers do not mistake them for solver-backed answers.
type Fallback struct {
	sentinels []string
}

var defaultSentinels = []string{
	"access_denied",
	"forbidden",
	"contradiction",
	"conflict",
}

// matchSentinel returns the first default sentinel found in text, or "".
// The SAT adapter consults the same list when deciding whether a rule set
// carries an explicit denial.
func matchSentinel(text string) string {
	return firstSentinel(defaultSentinels, text)
}

func firstSentinel(sentinels []string, text string) string {
	for _, s := range sentinels {
		if strings.Contains(text, s) {
			return s
		}
	}
	return ""
}

func NewFallback() *Fallback {
	return &Fallback{sentinels: defaultSentinels}
}

func (f *Fallback) Name() string { return models.SolverFallback }

func (f *Fallback) match(text string) string {
	return firstSentinel(f.sentinels, text)
}

func (f *Fallback) Check(ctx context.Context, exprs []logic.Expr) models.SolverVerdict {
	for _, e := range exprs {
		rendered := e.Render()
		if s := f.match(rendered); s != "" {
			return models.SolverVerdict{
				Outcome: models.OutcomeSat,
				Counterexample: map[string]string{
					"sentinel":        s,
					"conflict_source": rendered,
				},
				SolverUsed: f.Name(),
			}
		}
	}
	return models.SolverVerdict{Outcome: models.OutcomeUnsat, SolverUsed: f.Name()}
}

func (f *Fallback) CheckEntailment(ctx context.Context, rules, obligations []parser.Clause) models.EntailmentVerdict {
	for _, cl := range append(append([]parser.Clause{}, rules...), obligations...) {
		if s := f.match(cl.Raw); s != "" {
			return models.EntailmentVerdict{
				IsSatisfiable: true,
				CounterExample: map[string]string{
					"sentinel":        s,
					"conflict_source": cl.Raw,
				},
				SolverUsed: f.Name(),
			}
		}
	}
	return models.EntailmentVerdict{IsUnsatisfiable: true, SolverUsed: f.Name()}
}
