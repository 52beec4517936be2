//go:build !((linux || darwin || freebsd) && cgo)

package addon

import "runtime"

// LoadPlugin always fails: Go plugins need cgo on linux, darwin or freebsd.
func LoadPlugin(path string) (Module, error) {
	return nil, &ModuleLoadError{
		Path:   path,
		Reason: "go plugins are not supported on " + runtime.GOOS + "/" + runtime.GOARCH + " without cgo",
	}
}
