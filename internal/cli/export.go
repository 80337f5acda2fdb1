package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/govproof/govproof/internal/observability/logging"
	"github.com/govproof/govproof/internal/smtlib"
	"github.com/govproof/govproof/internal/verifier"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Compile a policy and print its SMT-LIB form",
	Long: `Export compiles a policy (and optional principles) without solving
and prints the resulting SMT-LIB script, suitable for feeding to an external
solver.

Example:
  govproof export --policy ./access.rego --principles ./constitution.yaml > policy.smt2`,
	SilenceUsage: true,
	RunE:         runExport,
}

var (
	exportPolicyFile string
	exportPolicyID   string
	exportPrinciples string
	exportOutput     string
)

func init() {
	exportCmd.Flags().StringVarP(&exportPolicyFile, "policy", "P", "", "Policy file ('-' for stdin)")
	exportCmd.Flags().StringVar(&exportPolicyID, "policy-id", "", "Policy identifier (defaults to the file name)")
	exportCmd.Flags().StringVar(&exportPrinciples, "principles", "", "Constitutional principles YAML file")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the script to this file instead of stdout")
}

// GetExportCmd export
func GetExportCmd() *cobra.Command {
	return exportCmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.From(ctx)

	text, policyID, err := readPolicy(exportPolicyFile)
	if err != nil {
		return err
	}
	if exportPolicyID != "" {
		policyID = exportPolicyID
	}

	sess, err := verifier.Compile(ctx, text, policyID, exportPrinciples)
	if err != nil {
		return fmt.Errorf("compile policy: %w", err)
	}

	script := smtlib.Export(sess.Symbols, sess.AllConstraints())
	log.Event(ctx, "export.complete", map[string]any{
		"policy_id":   policyID,
		"constraints": len(sess.AllConstraints()),
	})

	if exportOutput != "" {
		if werr := os.WriteFile(exportOutput, []byte(script), 0644); werr != nil {
			return fmt.Errorf("write script: %w", werr)
		}
		return nil
	}
	fmt.Print(script)
	return nil
}
