package addon

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// WasmModule is a WebAssembly module instantiated in its own wazero runtime.
type WasmModule struct {
	runtime wazero.Runtime
	mod     api.Module
	exports []string
}

// LoadWasm reads and instantiates the WebAssembly module at path.
func LoadWasm(ctx context.Context, path string) (*WasmModule, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Reason: "read artifact", Err: err}
	}
	return InstantiateWasm(ctx, path, bin)
}

// InstantiateWasm compiles and instantiates bin. name identifies the module
// in errors and is usually the artifact path.
//
// WASI preview1 is available to the module so toolchains that link libc
// (zig, tinygo) still instantiate. A reactor's _initialize export runs
// before the module is returned; _start is never called.
func InstantiateWasm(ctx context.Context, name string, bin []byte) (*WasmModule, error) {
	r := wazero.NewRuntime(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		r.Close(ctx)
		return nil, &ModuleLoadError{Path: name, Reason: "instantiate wasi", Err: err}
	}

	compiled, err := r.CompileModule(ctx, bin)
	if err != nil {
		r.Close(ctx)
		return nil, &ModuleLoadError{Path: name, Reason: "invalid wasm module", Err: err}
	}

	cfg := wazero.NewModuleConfig().
		WithName("addon").
		WithStartFunctions("_initialize")
	mod, err := r.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		r.Close(ctx)
		return nil, &ModuleLoadError{Path: name, Reason: "instantiate module", Err: err}
	}

	exports := make([]string, 0, len(compiled.ExportedFunctions()))
	for export := range compiled.ExportedFunctions() {
		exports = append(exports, export)
	}
	sort.Strings(exports)

	return &WasmModule{runtime: r, mod: mod, exports: exports}, nil
}

// Exports returns the exported function names, sorted.
func (m *WasmModule) Exports() []string {
	return m.exports
}

// Call invokes export. Operands are converted to the function's declared
// parameter types; i32 operands must fit in 32 bits. The function must
// return exactly one value, and float results must be integral.
func (m *WasmModule) Call(ctx context.Context, export string, args ...int64) (int64, error) {
	fn := m.mod.ExportedFunction(export)
	if fn == nil {
		return 0, &InvocationError{Export: export, Reason: "export not found"}
	}

	def := fn.Definition()
	params := def.ParamTypes()
	if len(params) != len(args) {
		return 0, &InvocationError{
			Export: export,
			Reason: fmt.Sprintf("expects %d arguments, got %d", len(params), len(args)),
		}
	}

	stack := make([]uint64, len(args))
	for i, t := range params {
		v, err := encodeWasmValue(t, args[i])
		if err != nil {
			return 0, &InvocationError{Export: export, Reason: fmt.Sprintf("argument %d", i), Err: err}
		}
		stack[i] = v
	}

	results := def.ResultTypes()
	if len(results) != 1 {
		return 0, &InvocationError{
			Export: export,
			Reason: fmt.Sprintf("returns %d values, want 1", len(results)),
		}
	}

	out, err := fn.Call(ctx, stack...)
	if err != nil {
		return 0, &InvocationError{Export: export, Reason: "trapped", Err: err}
	}

	v, err := decodeWasmValue(results[0], out[0])
	if err != nil {
		return 0, &InvocationError{Export: export, Reason: "result", Err: err}
	}
	return v, nil
}

// Close tears down the runtime and every module in it.
func (m *WasmModule) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}

func encodeWasmValue(t api.ValueType, v int64) (uint64, error) {
	switch t {
	case api.ValueTypeI32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, fmt.Errorf("%d overflows i32", v)
		}
		return api.EncodeI32(int32(v)), nil
	case api.ValueTypeI64:
		return api.EncodeI64(v), nil
	case api.ValueTypeF32:
		f := float32(v)
		if !exactFloat(float64(f), v) {
			return 0, fmt.Errorf("%d is not exact as f32", v)
		}
		return api.EncodeF32(f), nil
	case api.ValueTypeF64:
		f := float64(v)
		if !exactFloat(f, v) {
			return 0, fmt.Errorf("%d is not exact as f64", v)
		}
		return api.EncodeF64(f), nil
	default:
		return 0, fmt.Errorf("unsupported parameter type %s", api.ValueTypeName(t))
	}
}

func decodeWasmValue(t api.ValueType, v uint64) (int64, error) {
	switch t {
	case api.ValueTypeI32:
		return int64(api.DecodeI32(v)), nil
	case api.ValueTypeI64:
		return int64(v), nil
	case api.ValueTypeF32:
		return integral(float64(api.DecodeF32(v)))
	case api.ValueTypeF64:
		return integral(api.DecodeF64(v))
	default:
		return 0, fmt.Errorf("unsupported result type %s", api.ValueTypeName(t))
	}
}

// exactFloat reports whether f converts back to v without rounding.
func exactFloat(f float64, v int64) bool {
	// float64(MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return false
	}
	return int64(f) == v
}

func integral(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}
