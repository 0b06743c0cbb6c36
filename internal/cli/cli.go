// Package cli implements the cukereport command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"cukereport/internal/logging"
	"cukereport/internal/reporterr"
)

// Exit codes.
const (
	ExitOK    = reporterr.ExitOK
	ExitError = reporterr.ExitError
	ExitUsage = reporterr.ExitConfig
)

// newLogger is a test seam for logger construction.
var newLogger = logging.NewLogger

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, stdout, stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	var usage *usageError
	if errors.As(err, &usage) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
		return ExitUsage
	}
	return reporterr.ExitCode(err)
}

// usageError marks flag and argument errors.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "cukereport",
		Short: "Generate HTML reports from Cucumber JSON results",
		Long: `cukereport merges Cucumber JSON result files into one aggregated report.

Examples:
  cukereport generate --json-dir results --report-path report
  cukereport generate --config cukereport.yaml --save-collected-json
  cukereport serve --report-path report --duckdb report/report.duckdb`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	root.AddCommand(newGenerateCmd(), newServeCmd(), newVersionCmd())
	return root
}
