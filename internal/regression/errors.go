package regression

import "errors"

var (
	// ErrNotRegistered indicates the requested plugin has no registry entry.
	ErrNotRegistered = errors.New("plugin not registered")

	// ErrMissingAttribute indicates the plugin module lacks the
	// registration attribute.
	ErrMissingAttribute = errors.New("missing plugin attribute")

	// ErrNotCallable indicates the registration attribute is present but
	// is not a zero-argument function.
	ErrNotCallable = errors.New("attribute is not callable")

	// ErrFactoryNotCallable indicates the registration attribute returned
	// a value that is not itself a zero-argument function.
	ErrFactoryNotCallable = errors.New("factory is not callable")

	// ErrContractViolation indicates the factory produced a value that
	// does not implement Manager.
	ErrContractViolation = errors.New("plugin does not implement the manager contract")

	// ErrDuplicateTest indicates a test name was registered twice.
	ErrDuplicateTest = errors.New("duplicate test name")

	// ErrInvalidTest indicates a test is missing required fields.
	ErrInvalidTest = errors.New("invalid test")
)
