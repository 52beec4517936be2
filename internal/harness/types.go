package harness

import (
	"github.com/roach88/addoncheck/internal/canonical"
)

// Status summarises how a run ended.
type Status string

const (
	StatusPassed       Status = "passed"        // every result matched
	StatusMismatch     Status = "mismatch"      // at least one result differed
	StatusLoadFailed   Status = "load_failed"   // module could not be loaded
	StatusInvokeFailed Status = "invoke_failed" // a call raised an error
)

// Exit codes carried by a Report.
const (
	ExitOK     = 0
	ExitFailed = 1
)

// CheckResult is the outcome of one attempted check.
type CheckResult struct {
	Name     string  `json:"name"`
	Export   string  `json:"export"`
	Args     []int64 `json:"args"`
	Expected int64   `json:"expected"`
	Actual   int64   `json:"actual"`
	Match    bool    `json:"match"`
	Error    string  `json:"error,omitempty"`
}

// Report is the outcome of a harness run.
type Report struct {
	RunID    string        `json:"run_id"`
	Module   string        `json:"module"`
	Status   Status        `json:"status"`
	ExitCode int           `json:"exit_code"`
	Checks   []CheckResult `json:"checks"`
	Error    string        `json:"error,omitempty"`

	// Err is the *addon.ModuleLoadError or *addon.InvocationError that
	// ended the run, nil otherwise.
	Err error `json:"-"`
}

func newReport(runID, module string) *Report {
	return &Report{
		RunID:    runID,
		Module:   module,
		Status:   StatusPassed,
		ExitCode: ExitOK,
		Checks:   []CheckResult{},
	}
}

// fail records a fatal error. Fatal errors always exit 1.
func (r *Report) fail(status Status, err error) {
	r.Status = status
	r.ExitCode = ExitFailed
	r.Err = err
	r.Error = err.Error()
}

// Failed reports whether the run ended on a load or invocation error.
func (r *Report) Failed() bool {
	return r.Err != nil
}

// Mismatches counts checks that returned a wrong result.
func (r *Report) Mismatches() int {
	n := 0
	for _, c := range r.Checks {
		if c.Error == "" && !c.Match {
			n++
		}
	}
	return n
}

// CanonicalJSON serialises the report as canonical JSON.
func (r *Report) CanonicalJSON() ([]byte, error) {
	return canonical.Marshal(r.canonicalMap())
}

// canonicalMap converts the report to the value types canonical.Marshal accepts.
func (r *Report) canonicalMap() map[string]any {
	checks := make([]any, len(r.Checks))
	for i, c := range r.Checks {
		m := map[string]any{
			"name":     c.Name,
			"export":   c.Export,
			"args":     c.Args,
			"expected": c.Expected,
			"actual":   c.Actual,
			"match":    c.Match,
		}
		if c.Error != "" {
			m["error"] = c.Error
		}
		checks[i] = m
	}

	m := map[string]any{
		"run_id":    r.RunID,
		"module":    r.Module,
		"status":    string(r.Status),
		"exit_code": r.ExitCode,
		"checks":    checks,
	}
	if r.Error != "" {
		m["error"] = r.Error
	}
	return m
}
