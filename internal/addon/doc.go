// Package addon loads compiled native modules and calls their exports.
//
// Two module formats are supported:
//
//   - WebAssembly (.wasm), executed in-process by wazero. This is the
//     default artifact produced by the build (zig-out/bin/addon.wasm).
//   - Go plugins (.so, .dylib), opened with the standard plugin package.
//     Only available on cgo-enabled unix builds.
//
// A loaded Module is an owned value. Callers pass it explicitly to the code
// that invokes it and Close it when done; nothing is cached globally.
//
// Exports are called with integer operands and return a single integer:
//
//	mod, err := addon.Load(ctx, path)
//	if err != nil {
//	    return err // *addon.ModuleLoadError
//	}
//	defer mod.Close(ctx)
//
//	product, err := mod.Call(ctx, "multiply", 61, 89)
//	if err != nil {
//	    return err // *addon.InvocationError
//	}
package addon
