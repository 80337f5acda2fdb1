package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/govproof/govproof/internal/observability"
	"github.com/govproof/govproof/internal/observability/logging"
	otelobs "github.com/govproof/govproof/internal/observability/otel"
	"github.com/govproof/govproof/internal/observability/receipt"
	"github.com/govproof/govproof/internal/version"
)

var (
	logLevelFlag  string
	logFormatFlag string
	logOutputFlag string

	otelFlag         bool
	otelEndpointFlag string
	otelProtocolFlag string
	otelInsecureFlag bool

	receiptPathFlag string
	receiptModeFlag string

	solverTimeoutFlag time.Duration
)

var rootLogger logging.Logger
var rootOtel *otelobs.Handle
var rootReceipts receipt.Writer

var rootCmd = &cobra.Command{
	Use:   "govproof",
	Short: "Formal verifier for governance policies",
	Long: `govproof compiles access-control policies and constitutional
principles into logic constraints, checks them with a SAT-backed solver and
reports compliance verdicts with counterexamples.`,
	Version:           version.BuildVersion(),
	PersistentPreRunE: setupContext,
	PersistentPostRun: teardownContext,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupContext wires op_id, logger, receipts and tracing into the command
// context so subcommands only ever read from ctx.
func setupContext(cmd *cobra.Command, args []string) error {
	ctx := observability.WithOpID(cmd.Context())

	log, err := logging.NewLogger(logging.Config{
		Format: logFormatFlag,
		Level:  logLevelFlag,
		Output: logOutputFlag,
	})
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	rootLogger = log
	ctx = logging.WithLogger(ctx, log)

	if receiptPathFlag != "" {
		w, err := receipt.NewWriter(receiptPathFlag, receiptModeFlag)
		if err != nil {
			return fmt.Errorf("initialize receipts: %w", err)
		}
		rootReceipts = w
		ctx = receipt.WithWriter(ctx, w)
	}

	if otelFlag {
		h, err := otelobs.Init(ctx, otelobs.Config{
			Enabled:     true,
			Endpoint:    otelEndpointFlag,
			Protocol:    otelProtocolFlag,
			Insecure:    otelInsecureFlag,
			ServiceName: "govproof",
			SampleRatio: 1.0,
		})
		if err != nil {
			return fmt.Errorf("initialize tracing: %w", err)
		}
		rootOtel = h
		ctx = otelobs.WithHandle(ctx, h)
	}

	cmd.SetContext(ctx)
	return nil
}

func teardownContext(cmd *cobra.Command, args []string) {
	if rootOtel != nil {
		_ = rootOtel.Shutdown(cmd.Context())
	}
	if rootReceipts != nil {
		_ = rootReceipts.Close()
	}
	if rootLogger != nil {
		_ = rootLogger.Close()
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevelFlag, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormatFlag, "log-format", "jsonl", "Log format: jsonl or none")
	pf.StringVar(&logOutputFlag, "log-output", "stderr", "Log output: stderr or a file path")
	pf.BoolVar(&otelFlag, "otel", false, "Enable OpenTelemetry tracing")
	pf.StringVar(&otelEndpointFlag, "otel-endpoint", "", "OTLP endpoint (default from OTEL_EXPORTER_OTLP_ENDPOINT)")
	pf.StringVar(&otelProtocolFlag, "otel-protocol", otelobs.ProtocolHTTP, "OTLP protocol: otlphttp or otlpgrpc")
	pf.BoolVar(&otelInsecureFlag, "otel-insecure", false, "Allow insecure OTLP connections")
	pf.StringVar(&receiptPathFlag, "receipt", "", "Write an audit receipt to this path")
	pf.StringVar(&receiptModeFlag, "receipt-mode", string(receipt.ModeAppend), "Receipt mode: overwrite or append")
	pf.DurationVar(&solverTimeoutFlag, "solver-timeout", 10*time.Second, "Timeout per satisfiability check")

	rootCmd.AddCommand(GetVerifyCmd())
	rootCmd.AddCommand(GetEntailCmd())
	rootCmd.AddCommand(GetExportCmd())
	rootCmd.AddCommand(GetDiffCmd())
}
