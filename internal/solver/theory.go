package solver

import (
	"math"
	"sort"
	"strconv"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/parser"
)

// theoryAtom is a threshold comparison or string equality abstracted to one
// boolean for the SAT layer. The table keeps enough structure to decide
// whether a boolean assignment of these atoms is feasible in the underlying
// theory.
type theoryAtom struct {
	name string // SAT variable name
	desc string // human-readable form for counterexamples
	cmp  *logic.Cmp
	eq   *logic.Eq
}

type theoryTable struct {
	byKey map[string]*theoryAtom
	used  map[string]bool
	atoms []*theoryAtom
}

func newTheoryTable() *theoryTable {
	return &theoryTable{
		byKey: make(map[string]*theoryAtom),
		used:  make(map[string]bool),
	}
}

func (t *theoryTable) cmpAtom(c logic.Cmp) *theoryAtom {
	key := "cmp|" + c.V.Name + "|" + c.Op.String() + "|" + logic.FormatThreshold(c.Threshold)
	if a, ok := t.byKey[key]; ok {
		return a
	}
	cc := c
	return t.add(key, c.Render(), &theoryAtom{cmp: &cc})
}

func (t *theoryTable) eqAtom(e logic.Eq) *theoryAtom {
	key := "eq|" + e.V.Name + "|" + e.Value
	if a, ok := t.byKey[key]; ok {
		return a
	}
	ee := e
	return t.add(key, e.Render(), &theoryAtom{eq: &ee})
}

func (t *theoryTable) add(key, desc string, a *theoryAtom) *theoryAtom {
	base := parser.SanitizeName(desc)
	name := base
	for n := 2; t.used[name]; n++ {
		name = base + "_" + strconv.Itoa(n)
	}
	a.name = name
	a.desc = desc
	t.byKey[key] = a
	t.used[name] = true
	t.atoms = append(t.atoms, a)
	return a
}

// assignedLit is one theory atom with its truth value in a SAT model.
type assignedLit struct {
	name  string
	value bool
}

// interval is an open/closed numeric range.
type interval struct {
	lo, hi       float64
	strictLo     bool
	strictHi     bool
	contributing []assignedLit
}

func newInterval() *interval {
	return &interval{lo: math.Inf(-1), hi: math.Inf(1)}
}

func (iv *interval) tightenLo(t float64, strict bool) {
	if t > iv.lo || (t == iv.lo && strict && !iv.strictLo) {
		iv.lo, iv.strictLo = t, strict
	}
}

func (iv *interval) tightenHi(t float64, strict bool) {
	if t < iv.hi || (t == iv.hi && strict && !iv.strictHi) {
		iv.hi, iv.strictHi = t, strict
	}
}

func (iv *interval) infeasible() bool {
	if iv.lo > iv.hi {
		return true
	}
	return iv.lo == iv.hi && (iv.strictLo || iv.strictHi)
}

// pick chooses a witness value inside the interval for counterexamples.
func (iv *interval) pick() float64 {
	loOK := !math.IsInf(iv.lo, -1)
	hiOK := !math.IsInf(iv.hi, 1)
	switch {
	case loOK && hiOK:
		return (iv.lo + iv.hi) / 2
	case loOK:
		if iv.strictLo {
			return iv.lo + 1
		}
		return iv.lo
	case hiOK:
		if iv.strictHi {
			return iv.hi - 1
		}
		return iv.hi
	default:
		return 0
	}
}

// conflict is the set of assigned theory literals that cannot hold together.
type conflict struct {
	lits []assignedLit
}

// checkModel validates a SAT model against the theory: per numeric variable
// the chosen comparison literals must leave a nonempty interval, and a string
// variable cannot equal two different literals. Returns nil when the model is
// theory-consistent, along with witness values for reporting.
func (t *theoryTable) checkModel(model map[string]bool) (*conflict, map[string]string) {
	numeric := make(map[string]*interval)
	strEq := make(map[string][]assignedLit)
	strVal := make(map[string]string)

	for _, a := range t.atoms {
		val, ok := model[a.name]
		if !ok {
			continue
		}
		lit := assignedLit{name: a.name, value: val}
		switch {
		case a.cmp != nil:
			iv := numeric[a.cmp.V.Name]
			if iv == nil {
				iv = newInterval()
				numeric[a.cmp.V.Name] = iv
			}
			applyCmp(iv, a.cmp.Op, a.cmp.Threshold, val)
			iv.contributing = append(iv.contributing, lit)
		case a.eq != nil:
			if val {
				strEq[a.eq.V.Name] = append(strEq[a.eq.V.Name], lit)
				if prev, ok := strVal[a.eq.V.Name]; ok && prev != a.eq.Value {
					return &conflict{lits: strEq[a.eq.V.Name]}, nil
				}
				strVal[a.eq.V.Name] = a.eq.Value
			}
		}
	}

	witnesses := make(map[string]string)
	varNames := make([]string, 0, len(numeric))
	for name := range numeric {
		varNames = append(varNames, name)
	}
	sort.Strings(varNames)
	for _, name := range varNames {
		iv := numeric[name]
		if iv.infeasible() {
			return &conflict{lits: iv.contributing}, nil
		}
		witnesses[name] = logic.FormatThreshold(iv.pick())
	}
	for name, val := range strVal {
		witnesses[name] = val
	}
	return nil, witnesses
}

func applyCmp(iv *interval, op logic.CmpOp, t float64, value bool) {
	if !value {
		// a false comparison is its negation
		switch op {
		case logic.OpGE:
			op = logic.OpLT
		case logic.OpGT:
			op = logic.OpLE
		case logic.OpLE:
			op = logic.OpGT
		case logic.OpLT:
			op = logic.OpGE
		}
	}
	switch op {
	case logic.OpGE:
		iv.tightenLo(t, false)
	case logic.OpGT:
		iv.tightenLo(t, true)
	case logic.OpLE:
		iv.tightenHi(t, false)
	case logic.OpLT:
		iv.tightenHi(t, true)
	}
}
