package plugin

import "errors"

// ErrModuleNotFound matches any module-resolution failure via errors.Is.
var ErrModuleNotFound = errors.New("module not found")

// ModuleNotFoundError reports an unresolvable module reference.
type ModuleNotFoundError struct {
	Ref string
}

// Error implements the error interface.
func (e *ModuleNotFoundError) Error() string {
	return "no module named " + e.Ref
}

// Unwrap returns ErrModuleNotFound for errors.Is() compatibility.
func (e *ModuleNotFoundError) Unwrap() error {
	return ErrModuleNotFound
}
