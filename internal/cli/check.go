package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/addoncheck/internal/addon"
	"github.com/roach88/addoncheck/internal/harness"
	"github.com/roach88/addoncheck/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Module string // artifact path; resolved from the executable when empty
	Checks string // optional YAML or CUE checks file
	Strict bool   // mismatch exits 1
	Record string // optional SQLite history database

	// Loader allows overriding module loading (for testing).
	// If nil, defaults to addon.DefaultLoader.
	Loader addon.Loader

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to harness.UUIDv7Generator.
	RunIDs harness.RunIDGenerator

	// Now allows overriding the recording timestamp (for testing).
	Now func() time.Time
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the module and verify multiply",
		Long: `Load the module, call multiply(61, 89) and compare the result with 5429.

A wrong result is reported but, like the reference harness, exits 0.
Pass --strict to make a mismatch fail the run.

Exit codes:
  0 - Module loaded and every call succeeded
  1 - Module failed to load, a call failed, or a mismatch under --strict
  2 - Command error (bad checks file, history database not usable, etc.)

Examples:
  addoncheck check
  addoncheck check --module ./zig-out/bin/addon.wasm
  addoncheck check --checks ./checks.yaml --strict
  addoncheck check --record ./history.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	addCheckFlags(cmd, opts)

	return cmd
}

func addCheckFlags(cmd *cobra.Command, opts *CheckOptions) {
	cmd.Flags().StringVarP(&opts.Module, "module", "m", "", "path to the module artifact (default ../zig-out/bin/addon.wasm next to the executable)")
	cmd.Flags().StringVar(&opts.Checks, "checks", "", "YAML or CUE file listing checks (default multiply(61, 89) == 5429)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 when a result does not match")
	cmd.Flags().StringVar(&opts.Record, "record", "", "record the run in this SQLite database")
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	suite := harness.DefaultSuite()
	if opts.Checks != "" {
		loaded, err := harness.LoadSuite(opts.Checks)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load checks", err)
		}
		suite = loaded
		logger.Debug("checks loaded", "file", opts.Checks, "count", len(suite.Checks))
	}

	var st *store.Store
	if opts.Record != "" {
		var err error
		st, err = store.Open(opts.Record)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	console := harness.Console{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if opts.Format == "json" {
		// The JSON envelope is the only stdout output.
		console = harness.Console{Out: io.Discard, Err: io.Discard}
	}

	hopts := []harness.Option{
		harness.WithLogger(logger),
		harness.WithStrict(opts.Strict),
	}
	if opts.RunIDs != nil {
		hopts = append(hopts, harness.WithRunIDs(opts.RunIDs))
	}
	loader := opts.Loader
	if loader == nil {
		loader = addon.DefaultLoader
	}

	report := harness.New(loader, console, hopts...).Run(ctx, opts.Module, suite)

	if st != nil {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		if err := st.RecordRun(ctx, report, now()); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		logger.Debug("run recorded", "db", opts.Record, "run_id", report.RunID)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
		var err error
		if code := reportErrorCode(report); code != "" {
			err = formatter.Error(code, reportMessage(report), report)
		} else {
			err = formatter.Success(report)
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if report.ExitCode != ExitSuccess {
		return &ExitError{
			Code:     report.ExitCode,
			Message:  reportMessage(report),
			Err:      report.Err,
			Reported: true,
		}
	}
	return nil
}

// reportErrorCode maps a report to a CLI error code, or "" when the run
// counts as successful.
func reportErrorCode(report *harness.Report) string {
	switch {
	case report.Status == harness.StatusLoadFailed:
		return ErrCodeLoadFailed
	case report.Status == harness.StatusInvokeFailed:
		return ErrCodeInvokeFailed
	case report.Status == harness.StatusMismatch && report.ExitCode != ExitSuccess:
		return ErrCodeMismatch
	default:
		return ""
	}
}

func reportMessage(report *harness.Report) string {
	switch report.Status {
	case harness.StatusLoadFailed:
		return "module failed to load"
	case harness.StatusInvokeFailed:
		return "module call failed"
	case harness.StatusMismatch:
		return fmt.Sprintf("%d result(s) did not match", report.Mismatches())
	default:
		return "all checks passed"
	}
}
