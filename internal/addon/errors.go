package addon

import "fmt"

// ModuleLoadError reports an artifact that could not be turned into a Module:
// missing, unreadable, malformed or built for another platform.
type ModuleLoadError struct {
	Path   string
	Reason string
	Err    error // Underlying error (optional)
}

func (e *ModuleLoadError) Error() string {
	if e.Path == "" {
		if e.Err != nil {
			return fmt.Sprintf("load: %s: %v", e.Reason, e.Err)
		}
		return "load: " + e.Reason
	}
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *ModuleLoadError) Unwrap() error {
	return e.Err
}

// InvocationError reports a call into a loaded module that did not produce a
// result: missing export, signature mismatch, or a trap inside the module.
type InvocationError struct {
	Export string
	Reason string
	Err    error // Underlying error (optional)
}

func (e *InvocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("call %s: %s: %v", e.Export, e.Reason, e.Err)
	}
	return fmt.Sprintf("call %s: %s", e.Export, e.Reason)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
