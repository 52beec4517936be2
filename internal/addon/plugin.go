package addon

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"
)

// pluginSymbol maps an export name to the Go identifier a plugin must use
// for it: "multiply" is looked up as "Multiply".
func pluginSymbol(export string) string {
	r, size := utf8.DecodeRuneInString(export)
	if r == utf8.RuneError {
		return export
	}
	return string(unicode.ToUpper(r)) + export[size:]
}

// int32Operands narrows both operands for a func(int32, int32) int32 export.
func int32Operands(export string, a, b int64) (int32, int32, error) {
	for i, v := range []int64{a, b} {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, 0, &InvocationError{
				Export: export,
				Reason: fmt.Sprintf("argument %d", i),
				Err:    fmt.Errorf("%d overflows int32", v),
			}
		}
	}
	return int32(a), int32(b), nil
}

// intOperands narrows both operands for a func(int, int) int export. It only
// rejects anything on platforms where int is 32 bits.
func intOperands(export string, a, b int64) (int, int, error) {
	for i, v := range []int64{a, b} {
		if v < math.MinInt || v > math.MaxInt {
			return 0, 0, &InvocationError{
				Export: export,
				Reason: fmt.Sprintf("argument %d", i),
				Err:    fmt.Errorf("%d overflows int", v),
			}
		}
	}
	return int(a), int(b), nil
}
