package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/addoncheck/internal/addon"
)

// Console receives the human-readable transcript of a run.
type Console struct {
	Out io.Writer // progress and results
	Err io.Writer // load and invocation failures
}

// Harness loads a module and runs checks against it.
type Harness struct {
	loader  addon.Loader
	console Console
	logger  *slog.Logger
	runIDs  RunIDGenerator
	strict  bool
	resolve func() (string, error)
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the structured logger. Defaults to discarding logs.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithRunIDs overrides the run id generator (UUIDv7 by default).
func WithRunIDs(gen RunIDGenerator) Option {
	return func(h *Harness) { h.runIDs = gen }
}

// WithStrict makes a result mismatch exit 1. This deviates from the
// reference harness, where a mismatch is reported but exits 0.
func WithStrict(strict bool) Option {
	return func(h *Harness) { h.strict = strict }
}

// WithResolver overrides how the artifact path is found when Run is given
// an empty path. Defaults to addon.DefaultPath.
func WithResolver(resolve func() (string, error)) Option {
	return func(h *Harness) { h.resolve = resolve }
}

// New creates a harness that loads modules through loader. Nil console
// writers are replaced with io.Discard.
func New(loader addon.Loader, console Console, opts ...Option) *Harness {
	if console.Out == nil {
		console.Out = io.Discard
	}
	if console.Err == nil {
		console.Err = io.Discard
	}
	h := &Harness{
		loader:  loader,
		console: console,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		runIDs:  UUIDv7Generator{},
		resolve: addon.DefaultPath,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run loads the module at path (resolved from the executable location when
// empty) and runs every check in order.
//
// Execution flow:
// 1. Resolve and load the module; on failure stop with StatusLoadFailed
// 2. For each check, invoke its export; on failure stop with StatusInvokeFailed
// 3. Compare each result with the expected value and report it
//
// The returned report is never nil. Its ExitCode is the process exit code.
func (h *Harness) Run(ctx context.Context, path string, suite Suite) *Report {
	report := newReport(h.runIDs.Generate(), path)
	logger := h.logger.With("run_id", report.RunID)

	mod, err := h.load(ctx, path, report)
	if err != nil {
		fmt.Fprintf(h.console.Err, "Error loading addon: %v\n", err)
		logger.Error("module load failed", "module", report.Module, "error", err)
		report.fail(StatusLoadFailed, err)
		return report
	}
	defer func() {
		if err := mod.Close(ctx); err != nil {
			logger.Warn("module close failed", "error", err)
		}
	}()

	for _, check := range suite.Checks {
		result, err := h.invoke(ctx, mod, check)
		if err != nil {
			fmt.Fprintf(h.console.Err, "Failed to call %s(): %v\n", check.Export, err)
			logger.Error("invocation failed", "check", check.Name, "export", check.Export, "error", err)
			report.Checks = append(report.Checks, CheckResult{
				Name:     check.Name,
				Export:   check.Export,
				Args:     check.Args,
				Expected: check.Expected,
				Error:    err.Error(),
			})
			report.fail(StatusInvokeFailed, err)
			return report
		}

		report.Checks = append(report.Checks, h.verify(check, result))
	}

	if report.Mismatches() > 0 {
		report.Status = StatusMismatch
		if h.strict {
			report.ExitCode = ExitFailed
		}
	}
	logger.Info("run finished", "status", report.Status, "exit_code", report.ExitCode)

	return report
}

// load resolves the artifact path if needed and loads the module.
func (h *Harness) load(ctx context.Context, path string, report *Report) (addon.Module, error) {
	fmt.Fprintln(h.console.Out, "Loading addon...")

	if path == "" {
		resolved, err := h.resolve()
		if err != nil {
			return nil, &addon.ModuleLoadError{Reason: "cannot resolve artifact path", Err: err}
		}
		path = resolved
		report.Module = path
	}
	h.logger.Debug("loading module", "module", path)

	mod, err := h.loader.Load(ctx, path)
	if err != nil {
		var loadErr *addon.ModuleLoadError
		if !errors.As(err, &loadErr) {
			err = &addon.ModuleLoadError{Path: path, Reason: "load failed", Err: err}
		}
		return nil, err
	}

	fmt.Fprintln(h.console.Out, "Addon loaded successfully!")
	h.logger.Debug("module loaded", "module", path, "exports", mod.Exports())
	return mod, nil
}

// invoke calls the check's export and prints the result.
func (h *Harness) invoke(ctx context.Context, mod addon.Module, check Check) (int64, error) {
	h.logger.Debug("invoking", "check", check.Name, "export", check.Export, "args", check.Args)

	result, err := mod.Call(ctx, check.Export, check.Args...)
	if err != nil {
		var invErr *addon.InvocationError
		if !errors.As(err, &invErr) {
			err = &addon.InvocationError{Export: check.Export, Reason: "call failed", Err: err}
		}
		return 0, err
	}

	fmt.Fprintf(h.console.Out, "%s() = %d\n", check.Export, result)
	return result, nil
}

// verify compares result with the expectation. A mismatch is reported, not
// returned as an error.
func (h *Harness) verify(check Check, result int64) CheckResult {
	cr := CheckResult{
		Name:     check.Name,
		Export:   check.Export,
		Args:     check.Args,
		Expected: check.Expected,
		Actual:   result,
		Match:    result == check.Expected,
	}

	if cr.Match {
		fmt.Fprintln(h.console.Out, "Calculation is correct!")
	} else {
		fmt.Fprintf(h.console.Out, "Calculation error! Expected %d but got %d\n", check.Expected, result)
		h.logger.Warn("result mismatch", "check", check.Name, "expected", check.Expected, "actual", result)
	}
	return cr
}
