package verifier

import (
	"context"
	"sort"
	"time"

	"github.com/govproof/govproof/internal/compiler"
	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/observability/logging"
	"github.com/govproof/govproof/internal/parser"
	"github.com/govproof/govproof/internal/solver"
)

// MaxCounterexampleEntries bounds reported counterexamples for readability.
const MaxCounterexampleEntries = 5

// Orchestrator sequences one compilation session through parse, build,
// property generation, solving and compliance evaluation.
type Orchestrator struct {
	s solver.Solver
}

func New(s solver.Solver) *Orchestrator {
	return &Orchestrator{s: s}
}

// Compile builds a fresh session for the policy text and optional principles
// file. The returned error is the session-fatal configuration case (missing
// or unreadable principles file); malformed policy clauses are absorbed.
func Compile(ctx context.Context, policyText, policyID, principlesPath string) (*compiler.Session, error) {
	sess := compiler.NewSession()
	sess.CompilePolicy(ctx, policyText, policyID)
	if principlesPath != "" {
		if err := sess.LoadPrinciples(ctx, principlesPath); err != nil {
			return nil, err
		}
	}
	sess.GenerateProperties()
	return sess, nil
}

// CompileAndVerify is the external contract of the core. It never returns a
// Go error for malformed policy input: failures surface as a result with
// verification_status "error" and a non-empty error message.
func (o *Orchestrator) CompileAndVerify(ctx context.Context, policyText, policyID, principlesPath string) *models.VerificationResult {
	log := logging.From(ctx)
	result := &models.VerificationResult{
		PolicyID:    policyID,
		SolverUsed:  o.s.Name(),
		GeneratedAt: time.Now().UTC(),
	}

	sess, err := Compile(ctx, policyText, policyID, principlesPath)
	if err != nil {
		log.Error("verifier", "compilation failed", "policy_id", policyID, "error", err.Error())
		result.VerificationStatus = models.StatusError
		result.ErrorMessage = err.Error()
		return result
	}
	result.Summary = sess.Summary()

	// The verification query asks for a model violating at least one
	// constraint: unsat means nothing can be violated, which with zero
	// constraints holds trivially.
	all := sess.AllConstraints()
	negs := make([]logic.Expr, len(all))
	for i, c := range all {
		negs[i] = logic.Not{X: c.Expr}
	}
	verdict := o.s.Check(ctx, []logic.Expr{logic.Or{Xs: negs}})
	result.Outcome = verdict.Outcome
	result.Counterexample = capEntries(verdict.Counterexample, MaxCounterexampleEntries)

	eval := NewEvaluator(o.s)
	compliance := eval.EvaluateCompliance(ctx,
		logic.FilterCategory(sess.Constraints, logic.CategoryConstitutional))
	result.Compliance = &compliance
	properties := eval.VerifyProperties(ctx, sess.Properties)
	result.Properties = &properties

	result.VerificationStatus = statusFor(verdict.Outcome)
	if verdict.Error != "" {
		result.ErrorMessage = verdict.Error
	}
	result.Recommendations = recommendations(verdict, compliance, o.s.Name())

	log.Event(ctx, "verify.complete", map[string]any{
		"policy_id":        policyID,
		"outcome":          string(result.Outcome),
		"compliance_score": compliance.ComplianceScore,
		"constraints":      result.Summary.Constraints,
		"solver":           o.s.Name(),
	})
	return result
}

// CheckEntailment parses rule and obligation clause strings and asks the
// solver whether the rules entail the obligations.
func (o *Orchestrator) CheckEntailment(ctx context.Context, rules, obligations []string) models.EntailmentVerdict {
	rc := parser.ParseClauses(ctx, rules)
	oc := parser.ParseClauses(ctx, obligations)
	verdict := o.s.CheckEntailment(ctx, rc.Clauses, oc.Clauses)
	verdict.CounterExample = capEntries(verdict.CounterExample, MaxCounterexampleEntries)
	return verdict
}

func statusFor(outcome models.SolverOutcome) string {
	switch outcome {
	case models.OutcomeUnsat:
		return models.StatusVerified
	case models.OutcomeSat:
		return models.StatusReview
	default:
		return models.StatusInconclusive
	}
}

// capEntries keeps the first n entries by sorted key. Which entries a solver
// reports first is bookkeeping-dependent, so the cap sorts for stability.
func capEntries(m map[string]string, n int) map[string]string {
	if len(m) <= n {
		return m
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]string, n)
	for _, k := range keys[:n] {
		out[k] = m[k]
	}
	return out
}
