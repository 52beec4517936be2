package addon

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultArtifact is the file name of the build output the harness loads.
const DefaultArtifact = "addon.wasm"

// DefaultPath returns the absolute path of the build artifact relative to
// the running executable: <exe-dir>/../zig-out/bin/addon.wasm.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return ArtifactPath(filepath.Dir(exe))
}

// ArtifactPath returns the absolute artifact path for a harness located in dir.
func ArtifactPath(dir string) (string, error) {
	return filepath.Abs(filepath.Join(dir, "..", "zig-out", "bin", DefaultArtifact))
}
