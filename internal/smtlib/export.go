// Package smtlib serializes a compilation session into SMT-LIB text for
// interoperability and audit.
package smtlib

import (
	"fmt"
	"strings"

	"github.com/govproof/govproof/internal/logic"
)

// Export renders the symbol table and constraint set: logic declaration,
// variable declarations in creation order, assertions in construction order,
// then check-sat and exit.
func Export(symbols *logic.SymbolTable, constraints []logic.Constraint) string {
	var b strings.Builder
	b.WriteString("(set-logic QF_LIA)\n")

	for _, v := range symbols.Variables() {
		fmt.Fprintf(&b, "(declare-fun %s () %s)\n", v.Name, v.Kind.Sort())
	}

	for _, c := range constraints {
		fmt.Fprintf(&b, "; %s [%s p%d]\n", c.SourceID, c.Category, c.Priority)
		fmt.Fprintf(&b, "(assert %s)\n", Term(c.Expr))
	}

	b.WriteString("(check-sat)\n")
	b.WriteString("(exit)\n")
	return b.String()
}

// Term renders one expression as an SMT-LIB term.
func Term(e logic.Expr) string {
	switch x := e.(type) {
	case logic.Lit:
		if x.Value {
			return "true"
		}
		return "false"
	case logic.Var:
		return x.V.Name
	case logic.Not:
		return "(not " + Term(x.X) + ")"
	case logic.And:
		return nary("and", x.Xs, "true")
	case logic.Or:
		return nary("or", x.Xs, "false")
	case logic.Implies:
		return "(=> " + Term(x.A) + " " + Term(x.B) + ")"
	case logic.Cmp:
		return fmt.Sprintf("(%s %s %s)", x.Op, x.V.Name, logic.FormatThreshold(x.Threshold))
	case logic.Eq:
		return fmt.Sprintf("(= %s %q)", x.V.Name, x.Value)
	default:
		return "true"
	}
}

func nary(op string, xs []logic.Expr, empty string) string {
	switch len(xs) {
	case 0:
		return empty
	case 1:
		return Term(xs[0])
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = Term(x)
	}
	return "(" + op + " " + strings.Join(parts, " ") + ")"
}
