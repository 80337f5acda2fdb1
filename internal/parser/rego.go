package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/govproof/govproof/internal/observability/logging"
)

var (
	regoEqRe       = regexp.MustCompile(`^([A-Za-z_][\w.]*)\s*==\s*"([^"]*)"$`)
	regoEqBareRe   = regexp.MustCompile(`^([A-Za-z_][\w.]*)\s*==\s*([\w.]+)$`)
	regoPresenceRe = regexp.MustCompile(`^input\.[\w.]+$`)
)

// parseRego extracts allow { ... } and allow if { ... } blocks via brace
// matching. Each block becomes one implication clause: the conjunction of its
// conditions implies the allow atom.
func parseRego(ctx context.Context, text string) Result {
	log := logging.From(ctx)
	var res Result

	for _, block := range regoBlocks(text) {
		clause := Clause{Head: Atom{Name: "allow", Raw: "allow"}, Raw: block.full}
		skippedLine := false
		for _, line := range strings.Split(block.body, "\n") {
			line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";"))
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			cond, ok := parseRegoCondition(line)
			if !ok {
				log.Warn("parser", "skipping unrecognized rego condition", "line", line)
				skippedLine = true
				continue
			}
			clause.Body = append(clause.Body, cond)
		}
		if skippedLine {
			res.Skipped++
		}
		res.Clauses = append(res.Clauses, clause)
	}

	if len(res.Clauses) == 0 {
		log.Warn("parser", "no allow blocks found in rego-like policy")
	}
	return res
}

func parseRegoCondition(line string) (Cond, bool) {
	if m := regoEqRe.FindStringSubmatch(line); m != nil {
		return Cond{Kind: CondEq, Field: m[1], Value: m[2]}, true
	}
	if m := regoEqBareRe.FindStringSubmatch(line); m != nil {
		return Cond{Kind: CondEq, Field: m[1], Value: m[2]}, true
	}
	if regoPresenceRe.MatchString(line) {
		return Cond{Kind: CondPresence, Field: line}, true
	}
	if atom, ok := parsePredicate(line); ok {
		return Cond{Kind: CondAtom, Atom: atom}, true
	}
	return Cond{}, false
}

type regoBlock struct {
	full string
	body string
}

var regoHeadRe = regexp.MustCompile(`\ballow(\s+if)?\s*\{`)

// regoBlocks locates each allow block and returns its body between matched
// braces. Unbalanced blocks are dropped.
func regoBlocks(text string) []regoBlock {
	var blocks []regoBlock
	rest := text
	for {
		loc := regoHeadRe.FindStringIndex(rest)
		if loc == nil {
			break
		}
		open := loc[1] - 1 // index of '{'
		depth := 0
		end := -1
		for i := open; i < len(rest); i++ {
			switch rest[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			break
		}
		blocks = append(blocks, regoBlock{
			full: rest[loc[0] : end+1],
			body: rest[open+1 : end],
		})
		rest = rest[end+1:]
	}
	return blocks
}
