// Command funcscope analyzes functions of one or two real variables:
// continuity, differentiability, derivatives, limits at infinity, and
// extrema, from one expression string.
package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/funcscope/funcscope/analysis"
	"github.com/funcscope/funcscope/server"
)

var (
	jsonOutput  bool
	stepTimeout time.Duration
	serveAddr   string
	serveToken  string
)

var rootCmd = &cobra.Command{
	Use:           "funcscope",
	Short:         "Classify properties of a function of one or two real variables",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <expression>",
	Short: "Run one analysis and print a report",
	Example: `  funcscope analyze "x**2 + y**2"
  funcscope analyze --json "1/x"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw result as JSON")
	analyzeCmd.Flags().DurationVar(&stepTimeout, "timeout", analysis.DefaultStepTimeout,
		"deadline for each symbolic step")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveToken, "token", "",
		"bearer token for /v1 routes (defaults to FUNCSCOPE_TOKEN)")
	rootCmd.AddCommand(analyzeCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	a := analysis.NewAnalyzer(
		analysis.WithStepTimeout(stepTimeout),
		analysis.WithLogger(logger),
	)
	res, err := a.Analyze(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	writeReport(cmd.OutOrStdout(), res)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	token := serveToken
	if token == "" {
		token = os.Getenv("FUNCSCOPE_TOKEN")
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(
		server.WithToken(token),
		server.WithLogger(logger),
		server.WithAnalyzer(analysis.NewAnalyzer(analysis.WithLogger(logger))),
	)
	return srv.Run(ctx, serveAddr)
}
