package logic

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is one node of a constraint expression. Expressions reference only
// variables registered in the session's symbol table.
type Expr interface {
	isExpr()
	// Render returns a compact human-readable form, used in logs,
	// counterexamples and the fallback solver's text scan.
	Render() string
}

// Lit is the constant true/false expression.
type Lit struct {
	Value bool
}

// Var references a boolean formal variable as an expression.
type Var struct {
	V *FormalVariable
}

// Not negates its operand.
type Not struct {
	X Expr
}

// And is n-ary conjunction. Empty conjunction renders as true.
type And struct {
	Xs []Expr
}

// Or is n-ary disjunction. Empty disjunction renders as false.
type Or struct {
	Xs []Expr
}

// Implies is material implication.
type Implies struct {
	A, B Expr
}

// CmpOp is a threshold comparison operator.
type CmpOp int

const (
	OpGE CmpOp = iota
	OpGT
	OpLE
	OpLT
)

func (o CmpOp) String() string {
	switch o {
	case OpGE:
		return ">="
	case OpGT:
		return ">"
	case OpLE:
		return "<="
	case OpLT:
		return "<"
	default:
		return "?"
	}
}

// Cmp compares a numeric variable against a literal threshold.
type Cmp struct {
	V         *FormalVariable
	Op        CmpOp
	Threshold float64
}

// Eq asserts a string variable equals a literal value.
type Eq struct {
	V     *FormalVariable
	Value string
}

func (Lit) isExpr()     {}
func (Var) isExpr()     {}
func (Not) isExpr()     {}
func (And) isExpr()     {}
func (Or) isExpr()      {}
func (Implies) isExpr() {}
func (Cmp) isExpr()     {}
func (Eq) isExpr()      {}

func (e Lit) Render() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func (e Var) Render() string { return e.V.Name }

func (e Not) Render() string { return "!" + e.X.Render() }

func (e And) Render() string { return renderNary("&&", e.Xs, "true") }

func (e Or) Render() string { return renderNary("||", e.Xs, "false") }

func (e Implies) Render() string {
	return "(" + e.A.Render() + " -> " + e.B.Render() + ")"
}

func (e Cmp) Render() string {
	return fmt.Sprintf("%s %s %s", e.V.Name, e.Op, FormatThreshold(e.Threshold))
}

func (e Eq) Render() string {
	return fmt.Sprintf("%s == %q", e.V.Name, e.Value)
}

func renderNary(op string, xs []Expr, empty string) string {
	switch len(xs) {
	case 0:
		return empty
	case 1:
		return xs[0].Render()
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.Render()
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")"
}

// FormatThreshold renders a threshold literal without exponent notation.
func FormatThreshold(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Conj builds the conjunction of exprs, collapsing the one-element case.
func Conj(xs []Expr) Expr {
	if len(xs) == 1 {
		return xs[0]
	}
	return And{Xs: xs}
}
