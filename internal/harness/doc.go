// Package harness runs smoke checks against a compiled native module.
//
// A run is a strictly linear sequence: resolve and load the module, invoke
// each check's export, verify the result. Loading or invocation failures
// end the run immediately with exit code 1. A wrong result is reported but
// does not change the exit code unless the harness is strict.
//
// # Checks File
//
// The default suite is a single check, multiply(61, 89) == 5429. A suite
// can also be read from YAML:
//
//	checks:
//	  - name: reference
//	    export: multiply
//	    args: [61, 89]
//	    expected: 5429
//
// or from CUE with the same field names:
//
//	checks: [{
//	    name:     "reference"
//	    args:     [61, 89]
//	    expected: 61 * 89
//	}]
//
// export defaults to "multiply" and name defaults to the export.
//
// # Console Output
//
// Progress and results go to Console.Out, failures to Console.Err:
//
//	Loading addon...
//	Addon loaded successfully!
//	multiply() = 5429
//	Calculation is correct!
//
// Run ids never appear in console output, so repeated runs against the
// same artifact print identical transcripts.
package harness
