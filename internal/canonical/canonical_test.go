package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_SortedKeys(t *testing.T) {
	got, err := Marshal(map[string]any{
		"status":    "passed",
		"exit_code": 0,
		"checks":    []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"checks":[],"exit_code":0,"status":"passed"}`, string(got))
}

func TestMarshal_Nested(t *testing.T) {
	got, err := Marshal(map[string]any{
		"checks": []any{
			map[string]any{
				"args":     []int64{61, 89},
				"expected": int64(5429),
				"match":    true,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"checks":[{"args":[61,89],"expected":5429,"match":true}]}`, string(got))
}

func TestMarshal_Deterministic(t *testing.T) {
	v := map[string]any{"b": "2", "a": "1", "c": map[string]any{"z": true, "y": false}}

	first, err := Marshal(v)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Marshal(v)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	got, err := Marshal("a < b && c > d")
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(got))
}

func TestMarshal_Escapes(t *testing.T) {
	got, err := Marshal("quote\" slash\\ nl\n bell\x07 ls\u2028")
	require.NoError(t, err)
	assert.Equal(t, "\"quote\\\" slash\\\\ nl\\n bell\\u0007 ls\u2028\"", string(got))
}

func TestMarshal_NFC(t *testing.T) {
	got, err := Marshal("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(got))
}

func TestMarshal_UTF16KeyOrder(t *testing.T) {
	// U+1F600 encodes as the surrogate pair D83D DE00, which sorts before
	// U+FF61 even though its code point is larger.
	got, err := Marshal(map[string]any{"\uff61": 1, "\U0001F600": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"\uff61\":1}", string(got))
}

func TestMarshal_Rejects(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"null", nil},
		{"float", 1.5},
		{"nested null", map[string]any{"x": nil}},
		{"struct", struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.v)
			assert.Error(t, err)
		})
	}
}
