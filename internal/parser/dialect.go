package parser

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

// Dialect of the policy text.
type Dialect string

const (
	DialectRego    Dialect = "rego"
	DialectJSON    Dialect = "json"
	DialectDatalog Dialect = "datalog"
)

var regoBlockRe = regexp.MustCompile(`(?m)^\s*allow(\s+if)?\s*\{`)

// Detect sniffs the dialect of the policy text. Detection is purely
// syntactic: valid JSON wins, then Rego-like allow blocks, otherwise the text
// is treated as Datalog-like clauses.
func Detect(text string) Dialect {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "{") && json.Valid([]byte(t)) {
		return DialectJSON
	}
	if regoBlockRe.MatchString(t) {
		return DialectRego
	}
	return DialectDatalog
}

// Parse converts policy text into clauses, auto-detecting the dialect.
// Malformed clauses are skipped with a warning, never fatal; an empty input
// yields an empty result.
func Parse(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}
	switch Detect(text) {
	case DialectJSON:
		return parseJSON(ctx, text)
	case DialectRego:
		return parseRego(ctx, text)
	default:
		return parseDatalog(ctx, text)
	}
}
