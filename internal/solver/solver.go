// Package solver wraps satisfiability checking behind one interface with two
// implementations: a SAT-backed adapter over gophersat with a lazy theory
// loop for threshold and equality atoms, and a deterministic rule-based
// fallback for environments where real solving is not wanted. Which one runs
// is decided once at startup, not per call.
package solver

import (
	"context"
	"os"
	"time"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/observability/logging"
	"github.com/govproof/govproof/internal/parser"
)

// EnvSolver forces the fallback adapter when set to "fallback".
const EnvSolver = "GOVPROOF_SOLVER"

// DefaultTimeout bounds one satisfiability check.
const DefaultTimeout = 10 * time.Second

// Solver is the adapter interface. Implementations are stateless across
// calls: every Check runs in a fresh solver context, so no assertions leak
// between compilation sessions.
type Solver interface {
	Name() string
	Check(ctx context.Context, exprs []logic.Expr) models.SolverVerdict
	CheckEntailment(ctx context.Context, rules, obligations []parser.Clause) models.EntailmentVerdict
}

// Options for the SAT-backed adapter.
type Options struct {
	Timeout         time.Duration
	MaxTheoryRounds int
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxTheoryRounds <= 0 {
		o.MaxTheoryRounds = 256
	}
	return o
}

// New selects the adapter once at startup. The SAT adapter is pure Go and
// always available; the fallback is chosen only when forced by environment.
func New(ctx context.Context, opts Options) Solver {
	log := logging.From(ctx)
	if os.Getenv(EnvSolver) == models.SolverFallback {
		log.Info("solver", "using deterministic fallback adapter")
		return NewFallback()
	}
	return NewSAT(opts)
}
