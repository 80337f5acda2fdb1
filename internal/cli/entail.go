package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/govproof/govproof/internal/observability"
	"github.com/govproof/govproof/internal/observability/logging"
	otelobs "github.com/govproof/govproof/internal/observability/otel"
	"github.com/govproof/govproof/internal/observability/receipt"
	"github.com/govproof/govproof/internal/solver"
	"github.com/govproof/govproof/internal/verifier"
)

// entailCmd represents the entail command
var entailCmd = &cobra.Command{
	Use:   "entail",
	Short: "Check whether rules entail obligations",
	Long: `Entail asks the solver whether a set of Datalog-like rules logically
entails a set of obligations. Unsatisfiable means the obligations follow from
the rules; satisfiable means a counterexample exists.

Example:
  govproof entail --rule "access_allowed(user)" --obligation "access_allowed(user)"`,
	SilenceUsage: true,
	RunE:         runEntail,
}

var (
	entailRules       []string
	entailObligations []string
	entailFormat      string
)

func init() {
	entailCmd.Flags().StringArrayVarP(&entailRules, "rule", "r", nil, "Rule clause (repeatable)")
	entailCmd.Flags().StringArrayVarP(&entailObligations, "obligation", "O", nil, "Obligation clause (repeatable)")
	entailCmd.Flags().StringVarP(&entailFormat, "format", "f", "text", "Output format: text or json")
}

// GetEntailCmd export
func GetEntailCmd() *cobra.Command {
	return entailCmd
}

func runEntail(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	sess := receipt.Start(ctx, "govproof entail", os.Args[1:])
	var entSummary *receipt.EntailmentSummary
	defer func() {
		var opts []receipt.Option
		if entSummary != nil {
			opts = append(opts, receipt.WithEntailment(*entSummary))
		}
		_ = sess.Finish(err, opts...)
	}()

	if len(entailObligations) == 0 {
		return fmt.Errorf("no obligations provided. Usage: govproof entail --rule <clause> --obligation <clause>")
	}

	var span trace.Span
	ctx, span = otelobs.From(ctx).Tracer.Start(ctx, "govproof.entail",
		trace.WithAttributes(
			attribute.String("govproof.op_id", observability.OpID(ctx)),
			attribute.Int("govproof.rules", len(entailRules)),
			attribute.Int("govproof.obligations", len(entailObligations)),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed")
		} else {
			span.SetStatus(codes.Ok, "success")
		}
		span.End()
	}()

	log := logging.From(ctx)
	s := solver.New(ctx, solver.Options{Timeout: solverTimeoutFlag})
	orch := verifier.New(s)
	verdict := orch.CheckEntailment(ctx, entailRules, entailObligations)

	entSummary = &receipt.EntailmentSummary{
		Satisfiable:   verdict.IsSatisfiable,
		Unsatisfiable: verdict.IsUnsatisfiable,
		SolverUsed:    verdict.SolverUsed,
	}

	log.Event(ctx, "entail.complete", map[string]any{
		"rules":         len(entailRules),
		"obligations":   len(entailObligations),
		"satisfiable":   verdict.IsSatisfiable,
		"unsatisfiable": verdict.IsUnsatisfiable,
		"solver":        verdict.SolverUsed,
	})

	if entailFormat == "json" {
		data, merr := json.MarshalIndent(verdict, "", "  ")
		if merr != nil {
			return fmt.Errorf("marshal verdict: %w", merr)
		}
		fmt.Println(string(data))
	} else {
		switch {
		case verdict.ErrorMessage != "":
			fmt.Printf("%sERROR%s %s\n", colorRed, colorReset, verdict.ErrorMessage)
		case verdict.IsUnsatisfiable:
			fmt.Printf("%s✓ ENTAILED%s the obligations follow from the rules\n", colorGreen, colorReset)
		case verdict.IsSatisfiable:
			fmt.Printf("%s✗ NOT ENTAILED%s a counterexample exists\n", colorRed, colorReset)
			keys := make([]string, 0, len(verdict.CounterExample))
			for k := range verdict.CounterExample {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("    %s = %s\n", k, verdict.CounterExample[k])
			}
		default:
			fmt.Printf("%sINCONCLUSIVE%s the solver could not decide\n", colorYellow, colorReset)
		}
		fmt.Printf("%ssolver: %s%s\n", colorGray, verdict.SolverUsed, colorReset)
	}

	if verdict.ErrorMessage != "" {
		return fmt.Errorf("entailment check failed: %s", verdict.ErrorMessage)
	}
	return nil
}
