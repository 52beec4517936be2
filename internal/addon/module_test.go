package addon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/addoncheck/internal/testutil"
)

func TestLoad_Wasm(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteArtifact(t, t.TempDir(), "addon.wasm", testutil.MultiplyWasm())

	mod, err := Load(ctx, path)
	require.NoError(t, err)
	defer mod.Close(ctx)

	got, err := mod.Call(ctx, "multiply", 61, 89)
	require.NoError(t, err)
	assert.Equal(t, int64(5429), got)
}

func TestLoad_WasmExtensionCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteArtifact(t, t.TempDir(), "ADDON.WASM", testutil.MultiplyWasm())

	mod, err := Load(ctx, path)
	require.NoError(t, err)
	mod.Close(ctx)
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	malformed := testutil.WriteArtifact(t, dir, "addon.wasm", []byte{0xde, 0xad, 0xbe, 0xef})
	unsupported := testutil.WriteArtifact(t, dir, "addon.node", testutil.MultiplyWasm())

	tests := []struct {
		name   string
		path   string
		reason string
	}{
		{"missing", filepath.Join(dir, "nope.wasm"), "artifact not found"},
		{"directory", dir, "artifact is a directory"},
		{"malformed", malformed, "invalid wasm module"},
		{"unsupported", unsupported, "unsupported module format .node"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := Load(context.Background(), tt.path)
			require.Error(t, err)
			assert.Nil(t, mod)

			var loadErr *ModuleLoadError
			require.True(t, errors.As(err, &loadErr), "want *ModuleLoadError, got %T", err)
			assert.Equal(t, tt.path, loadErr.Path)
			assert.Contains(t, loadErr.Reason, tt.reason)
		})
	}
}

func TestLoad_MissingUnwrapsNotExist(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "addon.wasm"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDefaultLoader(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteArtifact(t, t.TempDir(), "addon.wasm", testutil.MultiplyWasm())

	mod, err := DefaultLoader.Load(ctx, path)
	require.NoError(t, err)
	mod.Close(ctx)
}

func TestErrorMessages(t *testing.T) {
	loadErr := &ModuleLoadError{Path: "/x/addon.wasm", Reason: "artifact not found"}
	assert.Equal(t, "load /x/addon.wasm: artifact not found", loadErr.Error())

	wrapped := &ModuleLoadError{Path: "/x/addon.wasm", Reason: "read artifact", Err: errors.New("boom")}
	assert.Equal(t, "load /x/addon.wasm: read artifact: boom", wrapped.Error())

	invErr := &InvocationError{Export: "multiply", Reason: "export not found"}
	assert.Equal(t, "call multiply: export not found", invErr.Error())
}

func TestArtifactPath(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")

	got, err := ArtifactPath(binDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "zig-out", "bin", "addon.wasm"), got)
	assert.True(t, filepath.IsAbs(got))
}

func TestDefaultPath(t *testing.T) {
	got, err := DefaultPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, DefaultArtifact, filepath.Base(got))
}

func TestPluginSymbol(t *testing.T) {
	assert.Equal(t, "Multiply", pluginSymbol("multiply"))
	assert.Equal(t, "Multiply", pluginSymbol("Multiply"))
	assert.Equal(t, "", pluginSymbol(""))
}

func TestModuleLoadError_NoPath(t *testing.T) {
	err := &ModuleLoadError{Reason: "cannot resolve artifact path", Err: errors.New("no executable")}
	assert.Equal(t, "load: cannot resolve artifact path: no executable", err.Error())
}
