package parser

import (
	"context"
	"testing"
)

func TestParseDatalog_RuleAndFact(t *testing.T) {
	text := `access_allowed(user) :- has_role(user, admin).
is_admin.`
	res := Parse(context.Background(), text)
	if res.Skipped != 0 {
		t.Fatalf("Skipped = %d, want 0", res.Skipped)
	}
	if len(res.Clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(res.Clauses))
	}

	rule := res.Clauses[0]
	if rule.Head.Name != "access_allowed" || rule.IsFact() {
		t.Errorf("rule parsed as %+v", rule)
	}
	if len(rule.Body) != 1 || rule.Body[0].Atom.Name != "has_role" {
		t.Errorf("rule body = %+v, want has_role atom", rule.Body)
	}
	if rule.Body[0].Atom.ArgKey != "user,admin" {
		t.Errorf("ArgKey = %q, want %q", rule.Body[0].Atom.ArgKey, "user,admin")
	}

	fact := res.Clauses[1]
	if fact.Head.Name != "is_admin" || !fact.IsFact() {
		t.Errorf("fact parsed as %+v", fact)
	}
}

func TestParseDatalog_CommentsSkipped(t *testing.T) {
	text := `% prolog-style comment
# hash comment
grant(x) :- owner(x).`
	res := Parse(context.Background(), text)
	if len(res.Clauses) != 1 {
		t.Fatalf("got %d clauses, want 1", len(res.Clauses))
	}
	if res.Clauses[0].Head.Name != "grant" {
		t.Errorf("Head.Name = %q", res.Clauses[0].Head.Name)
	}
}

func TestParseDatalog_MalformedClauseSkipped(t *testing.T) {
	text := `valid_fact.
123 bad clause
other_fact.`
	res := Parse(context.Background(), text)
	if len(res.Clauses) != 2 {
		t.Errorf("got %d clauses, want 2", len(res.Clauses))
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
}

func TestParseDatalog_MultiAtomBody(t *testing.T) {
	text := `access_allowed(u) :- authenticated(u), has_role(u, admin), not_suspended(u).`
	res := Parse(context.Background(), text)
	if len(res.Clauses) != 1 {
		t.Fatalf("got %d clauses, want 1", len(res.Clauses))
	}
	body := res.Clauses[0].Body
	names := []string{"authenticated", "has_role", "not_suspended"}
	if len(body) != len(names) {
		t.Fatalf("got %d conditions, want %d", len(body), len(names))
	}
	for i, n := range names {
		if body[i].Atom.Name != n {
			t.Errorf("body[%d].Atom.Name = %q, want %q", i, body[i].Atom.Name, n)
		}
	}
}

func TestParsePredicateText(t *testing.T) {
	tests := []struct {
		in     string
		name   string
		argKey string
		ok     bool
	}{
		{"audit_enabled", "audit_enabled", "", true},
		{"has_role(alice, admin)", "has_role", "alice,admin", true},
		{"nested(f(x), y)", "nested", "f(x),y", true},
		{"3bad", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		atom, ok := ParsePredicateText(tt.in)
		if ok != tt.ok {
			t.Errorf("ParsePredicateText(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if atom.Name != tt.name || atom.ArgKey != tt.argKey {
			t.Errorf("ParsePredicateText(%q) = %q/%q, want %q/%q",
				tt.in, atom.Name, atom.ArgKey, tt.name, tt.argKey)
		}
	}
}

func TestParseClauses(t *testing.T) {
	res := ParseClauses(context.Background(), []string{
		"access_allowed(u) :- has_role(u, admin).",
		"has_role(alice, admin).",
	})
	if len(res.Clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(res.Clauses))
	}
	if res.Clauses[1].Head.Key() != "has_role(alice,admin)" {
		t.Errorf("fact key = %q", res.Clauses[1].Head.Key())
	}
}
