// Package compiler turns parsed policy clauses and constitutional-principle
// declarations into the typed constraint set of one compilation session.
package compiler

import (
	"context"
	"fmt"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/parser"
)

// Session is one compile+verify run. It owns its symbol table, atom interner
// and constraint list; nothing is shared across sessions, so concurrent
// verification requests each build their own Session.
type Session struct {
	Symbols     *logic.SymbolTable
	Interner    *parser.Interner
	Constraints []logic.Constraint
	Properties  []logic.Constraint
	Skipped     int
}

func NewSession() *Session {
	return &Session{
		Symbols:  logic.NewSymbolTable(),
		Interner: parser.NewInterner(),
	}
}

// CompilePolicy parses the policy text and appends one access-control
// constraint per clause. Malformed clauses were already skipped by the
// parser; their count is accumulated on the session.
func (s *Session) CompilePolicy(ctx context.Context, text, policyID string) {
	res := parser.Parse(ctx, text)
	s.Skipped += res.Skipped
	for i, cl := range res.Clauses {
		sourceID := fmt.Sprintf("%s#%d", policyID, i)
		s.Constraints = append(s.Constraints, logic.NewConstraint(
			s.ClauseExpr(cl), sourceID, logic.CategoryAccessControl, 1))
	}
}

// AddClauses appends already-parsed clauses, used by the entailment path.
func (s *Session) AddClauses(clauses []parser.Clause, sourceID string, category logic.PolicyCategory, priority int) {
	for i, cl := range clauses {
		s.Constraints = append(s.Constraints, logic.NewConstraint(
			s.ClauseExpr(cl), fmt.Sprintf("%s#%d", sourceID, i), category, priority))
	}
}

// ClauseExpr lowers a clause: a fact is its head atom, a rule is
// Implies(And(body), head).
func (s *Session) ClauseExpr(cl parser.Clause) logic.Expr {
	head := s.atomExpr(cl.Head)
	if cl.IsFact() {
		return head
	}
	body := make([]logic.Expr, 0, len(cl.Body))
	for _, cond := range cl.Body {
		body = append(body, s.condExpr(cond))
	}
	return logic.Implies{A: logic.Conj(body), B: head}
}

func (s *Session) condExpr(cond parser.Cond) logic.Expr {
	switch cond.Kind {
	case parser.CondEq:
		v := s.Symbols.GetOrCreate(parser.SanitizeName(cond.Field), logic.KindString)
		v.AddDomainValue(cond.Value)
		return logic.Eq{V: v, Value: cond.Value}
	case parser.CondPresence:
		name := parser.SanitizeName(cond.Field) + "_present"
		return logic.Var{V: s.Symbols.GetOrCreate(name, logic.KindBool)}
	default:
		return s.atomExpr(cond.Atom)
	}
}

func (s *Session) atomExpr(a parser.Atom) logic.Expr {
	name := s.Interner.VarName(a)
	return logic.Var{V: s.Symbols.GetOrCreate(name, logic.KindBool)}
}

// AllConstraints returns the session constraints followed by the derived
// formal properties, in construction order.
func (s *Session) AllConstraints() []logic.Constraint {
	out := make([]logic.Constraint, 0, len(s.Constraints)+len(s.Properties))
	out = append(out, s.Constraints...)
	out = append(out, s.Properties...)
	return out
}

// Summary counts what the session produced.
func (s *Session) Summary() models.CompilationSummary {
	byCat := make(map[string]int)
	for _, c := range s.Constraints {
		byCat[string(c.Category)]++
	}
	return models.CompilationSummary{
		Variables:             s.Symbols.Len(),
		Constraints:           len(s.Constraints),
		ConstraintsByCategory: byCat,
		Properties:            len(s.Properties),
		SkippedClauses:        s.Skipped,
	}
}
