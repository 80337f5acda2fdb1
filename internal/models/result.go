// Package models holds the result shapes shared between the core pipeline,
// the CLI and external callers.
package models

import "time"

// SolverOutcome of a satisfiability check
type SolverOutcome string

const (
	OutcomeSat     SolverOutcome = "sat"
	OutcomeUnsat   SolverOutcome = "unsat"
	OutcomeUnknown SolverOutcome = "unknown"
)

// Solver identifiers reported in solver_used fields.
const (
	SolverSAT      = "sat"
	SolverFallback = "fallback"
)

// SolverVerdict is the result of one satisfiability check. Counterexample is
// populated only for sat outcomes; Error only when solving itself failed.
type SolverVerdict struct {
	Outcome        SolverOutcome     `json:"outcome"`
	Counterexample map[string]string `json:"counterexample,omitempty"`
	Error          string            `json:"error,omitempty"`
	SolverUsed     string            `json:"solver_used"`
}

// EntailmentVerdict answers whether a rule set entails a set of obligations.
// Satisfiable means a counterexample to entailment exists; unsatisfiable means
// the obligations follow from the rules.
type EntailmentVerdict struct {
	IsSatisfiable   bool              `json:"is_satisfiable"`
	IsUnsatisfiable bool              `json:"is_unsatisfiable"`
	CounterExample  map[string]string `json:"counter_example,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty"`
	SolverUsed      string            `json:"solver_used"`
}

// ComplianceReport per-principle and aggregate
type ComplianceReport struct {
	PerConstraint    map[string]bool `json:"per_constraint"`
	ComplianceScore  float64         `json:"compliance_score"`
	OverallCompliant bool            `json:"overall_compliant"`
}

// PropertyReport covers the derived formal properties.
type PropertyReport struct {
	PerProperty       map[string]bool `json:"per_property"`
	VerificationScore float64         `json:"verification_score"`
}

// CompilationSummary counts what one session produced.
type CompilationSummary struct {
	Variables             int            `json:"variables"`
	Constraints           int            `json:"constraints"`
	ConstraintsByCategory map[string]int `json:"constraints_by_category"`
	Properties            int            `json:"properties"`
	SkippedClauses        int            `json:"skipped_clauses,omitempty"`
}

// Verification statuses
const (
	StatusVerified     = "verified"
	StatusReview       = "review"
	StatusInconclusive = "inconclusive"
	StatusError        = "error"
)

// VerificationResult is the external contract of one compile+verify run.
// Malformed input never surfaces as a Go error: Status is "error" and
// ErrorMessage is set instead.
type VerificationResult struct {
	PolicyID           string             `json:"policy_id"`
	VerificationStatus string             `json:"verification_status"`
	Outcome            SolverOutcome      `json:"outcome,omitempty"`
	Counterexample     map[string]string  `json:"counterexample,omitempty"`
	Compliance         *ComplianceReport  `json:"compliance,omitempty"`
	Properties         *PropertyReport    `json:"properties,omitempty"`
	Summary            CompilationSummary `json:"summary"`
	Recommendations    []string           `json:"recommendations,omitempty"`
	SolverUsed         string             `json:"solver_used,omitempty"`
	ErrorMessage       string             `json:"error_message,omitempty"`
	GeneratedAt        time.Time          `json:"generated_at"`
}
