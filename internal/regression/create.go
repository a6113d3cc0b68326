package regression

import (
	"fmt"
	"os"

	"github.com/tymonx/cocotb/internal/plugin"
)

const (
	// PluginGroup is the extension-point group regression manager
	// plugins register under.
	PluginGroup = "cocotb"

	// RegisterAttr is the well-known attribute every regression manager
	// plugin module must expose. Calling it yields the plugin's factory.
	RegisterAttr = "cocotb_register_regression_manager"

	// EnvManager supplies the plugin name when Create is called without
	// an explicit one.
	EnvManager = "COCOTB_REGRESSION_MANAGER"
)

// Create resolves a regression manager by plugin name.
//
// Name precedence is explicit argument, then the COCOTB_REGRESSION_MANAGER
// environment variable. When neither names a plugin, the built-in default
// manager is returned without touching the registry. Every named path goes
// through the full registry lookup and validation chain, even if the name
// happens to be "default".
//
// Options apply to the built-in default manager only; plugin-produced
// managers arrive fully constructed from their factories.
func Create(name string, opts ...Option) (Manager, error) {
	if name == "" {
		name = os.Getenv(EnvManager)
	}
	if name == "" {
		return New(opts...), nil
	}

	var entry *plugin.Entry
	for _, e := range plugin.Lookup(PluginGroup) {
		if e.Name == name {
			entry = &e
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("cocotb plugin %q: %w", name, ErrNotRegistered)
	}

	// Module-resolution failures surface unchanged so callers can match
	// on plugin.ErrModuleNotFound directly.
	mod, err := plugin.Import(entry.Module)
	if err != nil {
		return nil, err
	}

	attr, ok := mod.Attr(RegisterAttr)
	if !ok {
		return nil, fmt.Errorf("cocotb plugin %q does not provide attribute %q: %w",
			name, RegisterAttr, ErrMissingAttribute)
	}

	register, ok := asCallable(attr)
	if !ok {
		return nil, fmt.Errorf("cocotb plugin attribute %s.%s: %w",
			name, RegisterAttr, ErrNotCallable)
	}

	returned := register()
	factory, ok := asCallable(returned)
	if !ok {
		return nil, fmt.Errorf("value %v returned from cocotb plugin %s.%s(): %w",
			returned, name, RegisterAttr, ErrFactoryNotCallable)
	}

	mgr, ok := factory().(Manager)
	if !ok {
		return nil, fmt.Errorf("cocotb plugin %q does not implement regression.Manager: %w",
			name, ErrContractViolation)
	}
	return mgr, nil
}

// asCallable narrows an attribute value to a zero-argument function.
// Plugins may store the bare function type or one of the named aliases.
func asCallable(v any) (func() any, bool) {
	switch f := v.(type) {
	case func() any:
		return f, true
	case RegisterFunc:
		return f, true
	case Factory:
		return f, true
	}
	return nil, false
}
