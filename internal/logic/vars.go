// Package logic holds the typed constraint representation shared by the
// policy compiler and the solver adapters: formal variables, the per-session
// symbol table, and the expression tree constraints are built from.
package logic

import "sort"

// VarKind is the sort of a formal variable.
type VarKind int

const (
	KindBool VarKind = iota
	KindInt
	KindReal
	KindString
)

// String for logs and summaries
func (k VarKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Sort returns the SMT-LIB sort name.
func (k VarKind) Sort() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindReal:
		return "Real"
	case KindString:
		return "String"
	default:
		return "Bool"
	}
}

// FormalVariable is a named logic variable. Kind is fixed at creation; Domain
// optionally records the string values the variable has been compared against.
type FormalVariable struct {
	Name   string
	Kind   VarKind
	domain map[string]bool
}

// AddDomainValue records an observed value for the variable.
func (v *FormalVariable) AddDomainValue(val string) {
	if v.domain == nil {
		v.domain = make(map[string]bool)
	}
	v.domain[val] = true
}

// Domain returns the recorded value domain, sorted. Nil when none recorded.
func (v *FormalVariable) Domain() []string {
	if len(v.domain) == 0 {
		return nil
	}
	vals := make([]string, 0, len(v.domain))
	for val := range v.domain {
		vals = append(vals, val)
	}
	sort.Strings(vals)
	return vals
}

// SymbolTable owns the name -> variable mapping for one compilation session.
// Not safe for concurrent use; sessions are single-threaded.
type SymbolTable struct {
	vars  map[string]*FormalVariable
	order []*FormalVariable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{vars: make(map[string]*FormalVariable)}
}

// GetOrCreate returns the variable registered under name, creating it with the
// requested kind on first use. A second caller asking for a different kind
// still gets the original variable: first-writer-wins, so the kind a name was
// created with is the kind it keeps.
func (t *SymbolTable) GetOrCreate(name string, kind VarKind) *FormalVariable {
	if v, ok := t.vars[name]; ok {
		return v
	}
	v := &FormalVariable{Name: name, Kind: kind}
	t.vars[name] = v
	t.order = append(t.order, v)
	return v
}

// Lookup returns the variable for name, if registered.
func (t *SymbolTable) Lookup(name string) (*FormalVariable, bool) {
	v, ok := t.vars[name]
	return v, ok
}

// Variables returns all variables in creation order.
func (t *SymbolTable) Variables() []*FormalVariable {
	out := make([]*FormalVariable, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports the number of registered variables.
func (t *SymbolTable) Len() int {
	return len(t.order)
}
