package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govproof/govproof/internal/differ"
	"github.com/govproof/govproof/internal/observability/logging"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <before.json> <after.json>",
	Short: "Compare two verification results",
	Long: `Diff compares two saved verification results (written with
'govproof verify --output') and reports what changed in human-readable terms,
not just raw JSON patches.

Example:
  govproof diff baseline.json current.json --fail-on critical`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runDiff,
}

var (
	diffFailOnFlag string
	diffFormatFlag string
)

func init() {
	diffCmd.Flags().StringVar(&diffFailOnFlag, "fail-on", "critical", "Fail threshold: critical, moderate, or info")
	diffCmd.Flags().StringVarP(&diffFormatFlag, "format", "f", "text", "Output format: text or json")
}

// GetDiffCmd returns the diff command
func GetDiffCmd() *cobra.Command {
	return diffCmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.From(ctx)

	failOn, err := ParseFailOnLevel(diffFailOnFlag)
	if err != nil {
		return err
	}

	result, err := differ.CompareFiles(args[0], args[1])
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	log.Event(ctx, "diff.complete", map[string]any{
		"before":      args[0],
		"after":       args[1],
		"has_changes": result.HasChanges,
		"changes":     len(result.Diffs),
	})

	if diffFormatFlag == "json" {
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return fmt.Errorf("marshal diff: %w", merr)
		}
		fmt.Println(string(data))
	} else {
		if !result.HasChanges {
			fmt.Printf("%s✓ No changes between results%s\n", colorGreen, colorReset)
			return nil
		}
		fmt.Printf("%sCHANGES DETECTED%s (%d)\n", colorYellow, colorReset, len(result.Diffs))
		for _, d := range result.Diffs {
			color := getColorForSeverity(d.Severity)
			fmt.Printf("  %s[%s]%s %s\n", color, differ.SeverityString(d.Severity), colorReset, d.Translation)
		}
	}

	failing := 0
	for _, d := range result.Diffs {
		if failOn.ShouldFail(d.Severity) {
			failing++
		}
	}
	if failing > 0 {
		return fmt.Errorf("%d change(s) at or above %s severity", failing, failOn)
	}
	return nil
}
