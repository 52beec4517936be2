//go:build (linux || darwin || freebsd) && cgo

package addon

import (
	"context"
	"fmt"
	"plugin"
)

// PluginModule is a Go plugin opened with plugin.Open.
//
// Supported export signatures are func(int64, int64) int64,
// func(int, int) int and func(int32, int32) int32, either as a function
// or as a pointer to a function variable. Operands that do not fit the
// parameter type are rejected rather than truncated.
type PluginModule struct {
	path string
	p    *plugin.Plugin
}

// LoadPlugin opens the Go plugin at path.
func LoadPlugin(path string) (Module, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Reason: "open plugin", Err: err}
	}
	return &PluginModule{path: path, p: p}, nil
}

// Exports returns nil; plugins cannot enumerate their symbols.
func (m *PluginModule) Exports() []string {
	return nil
}

// Call looks up the capitalised export and calls it. A panic inside the
// plugin is reported as an InvocationError.
func (m *PluginModule) Call(ctx context.Context, export string, args ...int64) (result int64, err error) {
	sym, lookupErr := m.p.Lookup(pluginSymbol(export))
	if lookupErr != nil {
		return 0, &InvocationError{Export: export, Reason: "export not found", Err: lookupErr}
	}
	if len(args) != 2 {
		return 0, &InvocationError{Export: export, Reason: fmt.Sprintf("expects 2 arguments, got %d", len(args))}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &InvocationError{Export: export, Reason: "panicked", Err: fmt.Errorf("%v", r)}
		}
	}()

	a, b := args[0], args[1]
	switch fn := sym.(type) {
	case func(int64, int64) int64:
		return fn(a, b), nil
	case *func(int64, int64) int64:
		return (*fn)(a, b), nil
	case func(int, int) int:
		x, y, err := intOperands(export, a, b)
		if err != nil {
			return 0, err
		}
		return int64(fn(x, y)), nil
	case *func(int, int) int:
		x, y, err := intOperands(export, a, b)
		if err != nil {
			return 0, err
		}
		return int64((*fn)(x, y)), nil
	case func(int32, int32) int32:
		x, y, err := int32Operands(export, a, b)
		if err != nil {
			return 0, err
		}
		return int64(fn(x, y)), nil
	case *func(int32, int32) int32:
		x, y, err := int32Operands(export, a, b)
		if err != nil {
			return 0, err
		}
		return int64((*fn)(x, y)), nil
	default:
		return 0, &InvocationError{Export: export, Reason: fmt.Sprintf("unsupported signature %T", sym)}
	}
}

// Close is a no-op: Go plugins cannot be unloaded.
func (m *PluginModule) Close(ctx context.Context) error {
	return nil
}
