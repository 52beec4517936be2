package addon

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Module is a loaded native module.
type Module interface {
	// Exports lists the callable export names, sorted. Formats that cannot
	// enumerate their symbols return nil.
	Exports() []string

	// Call invokes the named export with integer operands.
	// Failures are returned as *InvocationError.
	Call(ctx context.Context, export string, args ...int64) (int64, error)

	// Close releases the module. Calls after Close are undefined.
	Close(ctx context.Context) error
}

// Loader turns an artifact path into a Module.
type Loader interface {
	Load(ctx context.Context, path string) (Module, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (Module, error)

// Load calls f(ctx, path).
func (f LoaderFunc) Load(ctx context.Context, path string) (Module, error) {
	return f(ctx, path)
}

// DefaultLoader dispatches on the artifact's file extension.
var DefaultLoader Loader = LoaderFunc(Load)

// Load opens the artifact at path, choosing the backend by extension.
// All failures are returned as *ModuleLoadError.
func Load(ctx context.Context, path string) (Module, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &ModuleLoadError{Path: path, Reason: "artifact not found", Err: err}
	}
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Reason: "artifact not accessible", Err: err}
	}
	if info.IsDir() {
		return nil, &ModuleLoadError{Path: path, Reason: "artifact is a directory"}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wasm":
		mod, err := LoadWasm(ctx, path)
		if err != nil {
			return nil, err
		}
		return mod, nil
	case ".so", ".dylib":
		return LoadPlugin(path)
	default:
		return nil, &ModuleLoadError{
			Path:   path,
			Reason: "unsupported module format " + filepath.Ext(path) + " (want .wasm, .so or .dylib)",
		}
	}
}
