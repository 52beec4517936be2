package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Wasm value types.
const (
	I32 byte = 0x7f
	I64 byte = 0x7e
	F64 byte = 0x7c
)

// Wasm opcodes used by the fixture modules.
const (
	opUnreachable byte = 0x00
	opEnd         byte = 0x0b
	opLocalGet    byte = 0x20
	opI64Const    byte = 0x42
	opI32Mul      byte = 0x6c
	opI64Add      byte = 0x7c
	opI64Mul      byte = 0x7e
)

// WasmFunc assembles a binary module with a single exported function.
// body is the instruction sequence without locals or the trailing end.
//
// Sections are encoded with one-byte lengths, so the module must stay
// under 128 bytes per section. Panics otherwise.
func WasmFunc(export string, params, results []byte, body ...byte) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	typ := []byte{0x01, 0x60, byte(len(params))}
	typ = append(typ, params...)
	typ = append(typ, byte(len(results)))
	typ = append(typ, results...)
	out = appendSection(out, 0x01, typ)

	out = appendSection(out, 0x03, []byte{0x01, 0x00})

	exp := []byte{0x01, byte(len(export))}
	exp = append(exp, export...)
	exp = append(exp, 0x00, 0x00) // func index 0
	out = appendSection(out, 0x07, exp)

	fn := []byte{0x00} // no locals
	fn = append(fn, body...)
	fn = append(fn, opEnd)
	code := []byte{0x01, byte(len(fn))}
	code = append(code, fn...)
	out = appendSection(out, 0x0a, code)

	return out
}

func appendSection(out []byte, id byte, payload []byte) []byte {
	if len(payload) > 127 {
		panic("testutil: wasm section too large for one-byte length")
	}
	out = append(out, id, byte(len(payload)))
	return append(out, payload...)
}

// MultiplyWasm exports multiply(i64, i64) i64.
func MultiplyWasm() []byte {
	return WasmFunc("multiply", []byte{I64, I64}, []byte{I64},
		opLocalGet, 0, opLocalGet, 1, opI64Mul)
}

// MultiplyI32Wasm exports multiply(i32, i32) i32, the shape zig emits for
// `export fn multiply(a: i32, b: i32) i32`.
func MultiplyI32Wasm() []byte {
	return WasmFunc("multiply", []byte{I32, I32}, []byte{I32},
		opLocalGet, 0, opLocalGet, 1, opI32Mul)
}

// OffByOneWasm exports a multiply that returns a*b + 1.
func OffByOneWasm() []byte {
	return WasmFunc("multiply", []byte{I64, I64}, []byte{I64},
		opLocalGet, 0, opLocalGet, 1, opI64Mul, opI64Const, 1, opI64Add)
}

// TrapWasm exports a multiply that hits unreachable.
func TrapWasm() []byte {
	return WasmFunc("multiply", []byte{I64, I64}, []byte{I64}, opUnreachable)
}

// WrongExportWasm exports add instead of multiply.
func WrongExportWasm() []byte {
	return WasmFunc("add", []byte{I64, I64}, []byte{I64},
		opLocalGet, 0, opLocalGet, 1, opI64Add)
}

// WriteArtifact writes bin into dir/zig-out/bin/name and returns the path.
func WriteArtifact(t *testing.T, dir, name string, bin []byte) string {
	t.Helper()

	binDir := filepath.Join(dir, "zig-out", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", binDir, err)
	}
	path := filepath.Join(binDir, name)
	if err := os.WriteFile(path, bin, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
