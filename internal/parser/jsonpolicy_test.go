package parser

import (
	"context"
	"testing"
)

func TestParseJSON_SortedFacts(t *testing.T) {
	text := `{"resource": "database", "action": "read", "count": 3}`
	res := Parse(context.Background(), text)
	if res.Skipped != 0 {
		t.Fatalf("Skipped = %d, want 0", res.Skipped)
	}
	want := []string{"action(read)", "count(3)", "resource(database)"}
	if len(res.Clauses) != len(want) {
		t.Fatalf("got %d clauses, want %d", len(res.Clauses), len(want))
	}
	for i, w := range want {
		c := res.Clauses[i]
		if !c.IsFact() {
			t.Errorf("clause %d is not a fact: %+v", i, c)
		}
		if got := c.Head.Key(); got != w {
			t.Errorf("clause %d = %q, want %q (keys must be sorted)", i, got, w)
		}
	}
}

func TestParseJSON_ArrayFansOut(t *testing.T) {
	text := `{"roles": ["admin", "auditor"]}`
	res := Parse(context.Background(), text)
	if len(res.Clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(res.Clauses))
	}
	if res.Clauses[0].Head.Key() != "roles(admin)" || res.Clauses[1].Head.Key() != "roles(auditor)" {
		t.Errorf("array facts = %q, %q", res.Clauses[0].Head.Key(), res.Clauses[1].Head.Key())
	}
}

func TestParseJSON_NestedObjectArgument(t *testing.T) {
	text := `{"subject": {"id": "alice"}}`
	res := Parse(context.Background(), text)
	if len(res.Clauses) != 1 {
		t.Fatalf("got %d clauses, want 1", len(res.Clauses))
	}
	if got := res.Clauses[0].Head.ArgKey; got != `{"id":"alice"}` {
		t.Errorf("nested argument = %q, want compact json", got)
	}
}

func TestParseJSON_ScalarRendering(t *testing.T) {
	text := `{"enabled": true, "threshold": 0.95, "owner": null}`
	res := Parse(context.Background(), text)
	want := []string{"enabled(true)", "owner(null)", "threshold(0.95)"}
	if len(res.Clauses) != len(want) {
		t.Fatalf("got %d clauses, want %d", len(res.Clauses), len(want))
	}
	for i, w := range want {
		if got := res.Clauses[i].Head.Key(); got != w {
			t.Errorf("clause %d = %q, want %q", i, got, w)
		}
	}
}

func TestParseJSON_MalformedSkipped(t *testing.T) {
	// top-level array unmarshals into a map unsuccessfully
	res := parseJSON(context.Background(), `["a", "b"]`)
	if len(res.Clauses) != 0 || res.Skipped != 1 {
		t.Errorf("malformed json: clauses=%d skipped=%d, want 0/1",
			len(res.Clauses), res.Skipped)
	}
}
