package compiler

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/govproof/govproof/internal/logic"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/observability/logging"
	"github.com/govproof/govproof/internal/parser"
)

// Priorities for constraints derived from the YAML declarations.
const (
	priorityGovernance      = 2
	priorityPrinciple       = 3
	priorityStrictPrinciple = 5
)

// LoadPrinciples reads the constitutional-principles YAML file into the
// session. A missing or unreadable file is fatal to the session, unlike
// malformed individual requirements which are skipped.
func (s *Session) LoadPrinciples(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read principles file: %w", err)
	}
	var doc models.PrinciplesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse principles file %s: %w", path, err)
	}
	s.AddPrinciples(ctx, &doc)
	return nil
}

// AddPrinciples lowers the declarations. Iteration is over sorted names so
// two sessions compiling the same document build identical constraint lists.
func (s *Session) AddPrinciples(ctx context.Context, doc *models.PrinciplesDoc) {
	log := logging.From(ctx)

	for _, name := range sortedKeys(doc.ConstitutionalPrinciples) {
		p := doc.ConstitutionalPrinciples[name]
		sourceID := "principle_" + name
		pv := s.Symbols.GetOrCreate("principle_"+parser.SanitizeName(name), logic.KindBool)

		var reqs []logic.Expr
		for _, r := range p.Requirements {
			e, err := s.requirementExpr(r)
			if err != nil {
				log.Warn("compiler", "skipping malformed requirement",
					"principle", name, "error", err.Error())
				s.Skipped++
				continue
			}
			reqs = append(reqs, e)
		}
		if len(reqs) > 0 {
			s.Constraints = append(s.Constraints, logic.NewConstraint(
				logic.Implies{A: logic.Var{V: pv}, B: logic.Conj(reqs)},
				sourceID, logic.CategoryConstitutional, priorityPrinciple))
		}
		if p.Enforcement == models.EnforcementStrict {
			// strict principles must hold unconditionally, not merely imply
			// their requirements
			s.Constraints = append(s.Constraints, logic.NewConstraint(
				logic.Var{V: pv}, sourceID, logic.CategoryConstitutional, priorityStrictPrinciple))
		}
	}

	for _, name := range sortedKeys(doc.GovernanceRequirements) {
		g := doc.GovernanceRequirements[name]
		gv := s.Symbols.GetOrCreate("governance_"+parser.SanitizeName(name), logic.KindBool)
		metric := g.Metric
		if metric == "" {
			metric = name + "_metric"
		}
		mv := s.Symbols.GetOrCreate(parser.SanitizeName(metric), logic.KindReal)
		s.Constraints = append(s.Constraints, logic.NewConstraint(
			logic.Implies{
				A: logic.Var{V: gv},
				B: logic.Cmp{V: mv, Op: logic.OpGE, Threshold: g.Threshold},
			},
			"governance_"+name, logic.CategoryGovernanceRule, priorityGovernance))
	}
}

var thresholdRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(>=|<=|>|<)\s*([0-9]+(?:\.[0-9]+)?)$`)

// leadingIdent returns the identifier prefix of s, or "".
func leadingIdent(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return s[:i]
	}
	return s
}

// requirementExpr lowers one requirement: a threshold comparison over a Real
// metric variable, or a bare boolean condition atom. Comparison-shaped text
// is compiled with cel-go first, so the expression compiler is the primary
// gate and the regex only extracts the already-validated pieces.
func (s *Session) requirementExpr(r models.Requirement) (logic.Expr, error) {
	if r.Raw != "" {
		if strings.ContainsAny(r.Raw, "<>") {
			metric := leadingIdent(r.Raw)
			if metric == "" {
				return nil, fmt.Errorf("requirement %q: comparison lacks a metric name", r.Raw)
			}
			if err := validateComparison(metric, r.Raw); err != nil {
				return nil, err
			}
			m := thresholdRe.FindStringSubmatch(r.Raw)
			if m == nil {
				return nil, fmt.Errorf("requirement %q: only <metric> <op> <numeric literal> comparisons are supported", r.Raw)
			}
			threshold, err := strconv.ParseFloat(m[3], 64)
			if err != nil {
				return nil, fmt.Errorf("threshold in %q: %w", r.Raw, err)
			}
			op, err := cmpOp(m[2])
			if err != nil {
				return nil, err
			}
			mv := s.Symbols.GetOrCreate(parser.SanitizeName(m[1]), logic.KindReal)
			return logic.Cmp{V: mv, Op: op, Threshold: threshold}, nil
		}
		atom, ok := parser.ParsePredicateText(r.Raw)
		if !ok {
			return nil, fmt.Errorf("requirement %q is neither a threshold comparison nor a condition atom", r.Raw)
		}
		return s.atomExpr(atom), nil
	}

	if r.Metric != "" {
		op := logic.OpGE
		if r.Op != "" {
			var err error
			op, err = cmpOp(r.Op)
			if err != nil {
				return nil, err
			}
		}
		mv := s.Symbols.GetOrCreate(parser.SanitizeName(r.Metric), logic.KindReal)
		return logic.Cmp{V: mv, Op: op, Threshold: r.Threshold}, nil
	}

	if r.Condition != "" {
		v := s.Symbols.GetOrCreate(parser.SanitizeName(r.Condition), logic.KindBool)
		return logic.Var{V: v}, nil
	}

	return nil, fmt.Errorf("empty requirement")
}

func cmpOp(s string) (logic.CmpOp, error) {
	switch s {
	case ">=":
		return logic.OpGE, nil
	case ">":
		return logic.OpGT, nil
	case "<=":
		return logic.OpLE, nil
	case "<":
		return logic.OpLT, nil
	default:
		return 0, fmt.Errorf("unsupported comparison operator %q", s)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
