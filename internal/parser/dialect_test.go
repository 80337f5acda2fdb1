package parser

import (
	"context"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Dialect
	}{
		{"json object", `{"resource": "db", "action": "read"}`, DialectJSON},
		{"json with whitespace", "  \n{\"a\": 1}", DialectJSON},
		{"invalid json braces", `{not json`, DialectDatalog},
		{"rego allow", "allow {\n  input.role == \"admin\"\n}", DialectRego},
		{"rego allow if", "package authz\n\nallow if {\n  input.user\n}", DialectRego},
		{"datalog rule", "access_allowed(user) :- has_role(user, admin).", DialectDatalog},
		{"bare fact", "is_admin.", DialectDatalog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	res := Parse(context.Background(), "   \n\t ")
	if len(res.Clauses) != 0 || res.Skipped != 0 {
		t.Errorf("empty input produced %d clauses, %d skipped; want none",
			len(res.Clauses), res.Skipped)
	}
}
