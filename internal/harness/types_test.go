package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_CanonicalJSONWithError(t *testing.T) {
	report := newReport("run-042", "/x/addon.wasm")
	report.Checks = append(report.Checks, CheckResult{
		Name:     "multiply",
		Export:   "multiply",
		Args:     []int64{61, 89},
		Expected: 5429,
		Error:    "call multiply: trapped",
	})
	report.fail(StatusInvokeFailed, errTrapped{})

	got, err := report.CanonicalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"checks":[{"actual":0,"args":[61,89],"error":"call multiply: trapped","expected":5429,"export":"multiply","match":false,"name":"multiply"}],`+
			`"error":"call multiply: trapped","exit_code":1,"module":"/x/addon.wasm","run_id":"run-042","status":"invoke_failed"}`,
		string(got))
}

func TestReport_Mismatches(t *testing.T) {
	report := newReport("run-001", "m")
	report.Checks = []CheckResult{
		{Match: true},
		{Match: false},
		{Match: false, Error: "boom"}, // failed calls are not mismatches
	}
	assert.Equal(t, 1, report.Mismatches())
}

type errTrapped struct{}

func (errTrapped) Error() string { return "call multiply: trapped" }
