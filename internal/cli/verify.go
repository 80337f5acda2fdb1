package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/govproof/govproof/internal/audit"
	"github.com/govproof/govproof/internal/models"
	"github.com/govproof/govproof/internal/observability"
	"github.com/govproof/govproof/internal/observability/logging"
	otelobs "github.com/govproof/govproof/internal/observability/otel"
	"github.com/govproof/govproof/internal/observability/receipt"
	"github.com/govproof/govproof/internal/smtlib"
	"github.com/govproof/govproof/internal/solver"
	"github.com/govproof/govproof/internal/verifier"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compile a policy and verify it formally",
	Long: `Compile a policy (Rego-like, JSON or Datalog-like, auto-detected)
together with optional constitutional principles, check satisfiability and
report per-principle compliance.

Example:
  govproof verify --policy ./access.rego --principles ./constitution.yaml`,
	SilenceUsage: true,
	RunE:         runVerify,
}

var (
	verifyPolicyFile   string
	verifyPolicyID     string
	verifyPrinciples   string
	verifyFormat       string
	verifyExportPath   string
	verifyOutputPath   string
	verifyFailOnReview bool
)

func init() {
	verifyCmd.Flags().StringVarP(&verifyPolicyFile, "policy", "P", "", "Policy file ('-' for stdin)")
	verifyCmd.Flags().StringVar(&verifyPolicyID, "policy-id", "", "Policy identifier (defaults to the file name)")
	verifyCmd.Flags().StringVar(&verifyPrinciples, "principles", "", "Constitutional principles YAML file")
	verifyCmd.Flags().StringVarP(&verifyFormat, "format", "f", "text", "Output format: text or json")
	verifyCmd.Flags().StringVar(&verifyExportPath, "export", "", "Also write the SMT-LIB form to this file")
	verifyCmd.Flags().StringVarP(&verifyOutputPath, "output", "o", "", "Write the result JSON to this file (for later diffing)")
	verifyCmd.Flags().BoolVar(&verifyFailOnReview, "fail-on-review", false, "Exit non-zero unless the policy is formally verified")
}

// GetVerifyCmd export
func GetVerifyCmd() *cobra.Command {
	return verifyCmd
}

func runVerify(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	sess := receipt.Start(ctx, "govproof verify", os.Args[1:])
	var verifSummary *receipt.VerificationSummary
	defer func() {
		opts := []receipt.Option{
			receipt.WithPolicy(verifyPolicyID, policyPathForReceipt()),
			receipt.WithPrinciples(verifyPrinciples),
		}
		if verifSummary != nil {
			opts = append(opts, receipt.WithVerification(*verifSummary))
		}
		_ = sess.Finish(err, opts...)
	}()

	log := logging.From(ctx)
	start := time.Now()

	var span trace.Span
	ctx, span = otelobs.From(ctx).Tracer.Start(ctx, "govproof.verify",
		trace.WithAttributes(
			attribute.String("govproof.op_id", observability.OpID(ctx)),
			attribute.String("govproof.command", "verify"),
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

	policyText, policyID, err := readPolicy(verifyPolicyFile)
	if err != nil {
		return err
	}
	if verifyPolicyID != "" {
		policyID = verifyPolicyID
	}

	log.Event(ctx, "verify.start", map[string]any{"policy_id": policyID})

	s := solver.New(ctx, solver.Options{Timeout: solverTimeoutFlag})
	orch := verifier.New(s)
	result := orch.CompileAndVerify(ctx, policyText, policyID, verifyPrinciples)

	if verifyExportPath != "" && result.VerificationStatus != models.StatusError {
		compiled, cerr := verifier.Compile(ctx, policyText, policyID, verifyPrinciples)
		if cerr == nil {
			smt := smtlib.Export(compiled.Symbols, compiled.AllConstraints())
			if werr := os.WriteFile(verifyExportPath, []byte(smt), 0644); werr != nil {
				log.Warn("cli", "failed to write smt-lib export", "error", werr.Error())
			}
		}
	}

	fingerprint, _ := audit.Fingerprint(result)
	verifSummary = receiptSummary(result, fingerprint)

	if verifyOutputPath != "" {
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return fmt.Errorf("marshal result: %w", merr)
		}
		if werr := os.WriteFile(verifyOutputPath, data, 0644); werr != nil {
			return fmt.Errorf("write result: %w", werr)
		}
	}

	switch verifyFormat {
	case "json":
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return fmt.Errorf("marshal result: %w", merr)
		}
		fmt.Println(string(data))
	default:
		fmt.Print(RenderVerificationText(result, fingerprint))
	}

	log.Event(ctx, "verify.finish", map[string]any{
		"policy_id":   policyID,
		"status":      result.VerificationStatus,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if result.VerificationStatus == models.StatusError {
		return fmt.Errorf("verification error: %s", result.ErrorMessage)
	}
	if verifyFailOnReview && result.VerificationStatus != models.StatusVerified {
		return fmt.Errorf("policy not verified: status %s", result.VerificationStatus)
	}
	return nil
}

func readPolicy(path string) (text, id string, err error) {
	switch path {
	case "":
		return "", "", fmt.Errorf("no policy provided (use --policy <file> or --policy -)")
	case "-":
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return "", "", fmt.Errorf("read policy from stdin: %w", rerr)
		}
		return string(data), "stdin", nil
	default:
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return "", "", fmt.Errorf("read policy: %w", rerr)
		}
		return string(data), path, nil
	}
}

func policyPathForReceipt() string {
	if verifyPolicyFile == "-" {
		return ""
	}
	return verifyPolicyFile
}

func receiptSummary(r *models.VerificationResult, fingerprint string) *receipt.VerificationSummary {
	s := &receipt.VerificationSummary{
		Status:            r.VerificationStatus,
		Outcome:           string(r.Outcome),
		Constraints:       r.Summary.Constraints,
		SolverUsed:        r.SolverUsed,
		ResultFingerprint: fingerprint,
	}
	if r.Compliance != nil {
		s.ComplianceScore = r.Compliance.ComplianceScore
	}
	if r.Properties != nil {
		s.VerificationScore = r.Properties.VerificationScore
	}
	return s
}
