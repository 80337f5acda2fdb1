package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/parse"

	"github.com/govproof/govproof/internal/observability/logging"
)

// parseDatalog handles the Datalog-like dialect. The text is first handed to
// the mangle parser; when mangle rejects the unit (the dialect here is looser
// than mangle's), a tolerant per-line splitter takes over: split on ":-",
// body on top-level commas, one clause per line.
func parseDatalog(ctx context.Context, text string) Result {
	if res, ok := parseDatalogMangle(text); ok {
		return res
	}
	return parseDatalogFallback(ctx, text)
}

func parseDatalogMangle(text string) (Result, bool) {
	unit, err := parse.Unit(strings.NewReader(text))
	if err != nil {
		return Result{}, false
	}
	var res Result
	for _, cl := range unit.Clauses {
		clause := Clause{Head: mangleAtom(cl.Head), Raw: cl.String()}
		for _, premise := range cl.Premises {
			atom, ok := premise.(ast.Atom)
			if !ok {
				// non-atom premises (negation, comparisons) are outside
				// the propositional abstraction
				res.Skipped++
				continue
			}
			a := mangleAtom(atom)
			if a.Name == "true" && a.ArgKey == "" {
				continue
			}
			clause.Body = append(clause.Body, Cond{Kind: CondAtom, Atom: a})
		}
		res.Clauses = append(res.Clauses, clause)
	}
	return res, true
}

func mangleAtom(a ast.Atom) Atom {
	args := make([]string, len(a.Args))
	for i, t := range a.Args {
		args[i] = strings.TrimPrefix(t.String(), "/")
	}
	return Atom{
		Name:   a.Predicate.Symbol,
		ArgKey: strings.Join(args, ","),
		Raw:    a.String(),
	}
}

func parseDatalogFallback(ctx context.Context, text string) Result {
	log := logging.From(ctx)
	var res Result
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			continue
		}
		clause, ok := parseDatalogClause(line)
		if !ok {
			log.Warn("parser", "skipping malformed datalog clause", "clause", line)
			res.Skipped++
			continue
		}
		res.Clauses = append(res.Clauses, clause)
	}
	return res
}

func parseDatalogClause(line string) (Clause, bool) {
	stmt := strings.TrimSuffix(strings.TrimSpace(line), ".")
	head := stmt
	var bodyText string
	if idx := strings.Index(stmt, ":-"); idx >= 0 {
		head = strings.TrimSpace(stmt[:idx])
		bodyText = strings.TrimSpace(stmt[idx+2:])
	}

	headAtom, ok := parsePredicate(head)
	if !ok {
		return Clause{}, false
	}
	clause := Clause{Head: headAtom, Raw: line}

	if bodyText != "" {
		for _, part := range splitTopLevel(bodyText, ',') {
			part = strings.TrimSpace(part)
			if part == "" || part == "true" {
				continue
			}
			atom, ok := parsePredicate(part)
			if !ok {
				return Clause{}, false
			}
			clause.Body = append(clause.Body, Cond{Kind: CondAtom, Atom: atom})
		}
	}
	return clause, true
}

var predicateRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\((.*)\))?$`)

// parsePredicate abstracts name(arg1, arg2, ...) to an atom. Arguments are
// normalized (trimmed, comma-joined) but never bound or unified.
func parsePredicate(text string) (Atom, bool) {
	m := predicateRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Atom{}, false
	}
	name := m[1]
	var args []string
	if m[2] != "" {
		for _, a := range splitTopLevel(m[2], ',') {
			args = append(args, strings.TrimSpace(a))
		}
	}
	return Atom{Name: name, ArgKey: strings.Join(args, ","), Raw: strings.TrimSpace(text)}, true
}

// splitTopLevel splits on sep outside any parentheses or brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// ParsePredicateText exposes predicate parsing for requirement conditions.
func ParsePredicateText(text string) (Atom, bool) {
	return parsePredicate(text)
}

// ParseClauses parses a list of standalone Datalog-like clause strings, as
// used by the entailment checker. Each entry is one clause; malformed entries
// are skipped with a warning.
func ParseClauses(ctx context.Context, lines []string) Result {
	return parseDatalog(ctx, strings.Join(lines, "\n"))
}
