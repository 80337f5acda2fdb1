// Package parser converts the three accepted policy dialects (Rego-like
// blocks, structured JSON objects, Datalog-like clauses) into a uniform
// clause list. Predicates are abstracted to interned boolean atoms; arguments
// are carried as part of the atom key but never unified.
package parser

import (
	"strconv"
	"strings"
	"unicode"
)

// CondKind distinguishes the body condition forms.
type CondKind int

const (
	// CondAtom is a predicate atom such as has_role(alice, admin).
	CondAtom CondKind = iota
	// CondEq is an equality condition such as input.role == "admin".
	CondEq
	// CondPresence is a bare input.<field> presence check.
	CondPresence
)

// Atom is a predicate abstracted to a propositional symbol. Two predicates
// with the same name and argument list are the same atom; different argument
// lists are different atoms.
type Atom struct {
	Name   string
	ArgKey string
	Raw    string
}

// Key is the interning key for the atom.
func (a Atom) Key() string {
	if a.ArgKey == "" {
		return a.Name
	}
	return a.Name + "(" + a.ArgKey + ")"
}

// Cond is one body condition of a clause.
type Cond struct {
	Kind  CondKind
	Atom  Atom   // CondAtom
	Field string // CondEq, CondPresence
	Value string // CondEq
}

// Clause is a bare fact (empty body) or an implication body => head.
type Clause struct {
	Head Atom
	Body []Cond
	Raw  string
}

// IsFact reports whether the clause has no body.
func (c Clause) IsFact() bool { return len(c.Body) == 0 }

// Result is the ordered clause list plus the count of clauses the parser had
// to skip.
type Result struct {
	Clauses []Clause
	Skipped int
}

// Interner maps atom keys to solver variable names. Interning by the full key
// keeps distinct predicates distinct; sanitized names that would collide get
// a numeric suffix instead of silently unifying.
type Interner struct {
	byKey map[string]string
	used  map[string]bool
}

func NewInterner() *Interner {
	return &Interner{
		byKey: make(map[string]string),
		used:  make(map[string]bool),
	}
}

// VarName returns the stable variable name for the atom, allocating one on
// first use.
func (in *Interner) VarName(a Atom) string {
	key := a.Key()
	if name, ok := in.byKey[key]; ok {
		return name
	}
	base := SanitizeName(key)
	name := base
	for n := 2; in.used[name]; n++ {
		name = base + "_" + strconv.Itoa(n)
	}
	in.byKey[key] = name
	in.used[name] = true
	return name
}

// SanitizeName maps arbitrary text to an identifier usable as a solver
// variable and SMT-LIB symbol.
func SanitizeName(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "atom"
	}
	if !unicode.IsLetter(rune(out[0])) && out[0] != '_' {
		out = "v_" + out
	}
	return out
}
