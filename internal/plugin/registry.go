package plugin

import (
	"sync"
)

// registry holds all registered extension-point entries and loaded modules.
var (
	registryMu sync.RWMutex
	entries    []Entry
	modules    = make(map[string]Module)
)

// Register adds an extension-point entry to the registry.
// Entries should be registered during init() or early in main().
// Panics if an entry with the same group and name is already registered.
func Register(e Entry) {
	registryMu.Lock()
	defer registryMu.Unlock()

	for _, existing := range entries {
		if existing.Group == e.Group && existing.Name == e.Name {
			panic("plugin entry already registered: " + e.Group + "/" + e.Name)
		}
	}
	entries = append(entries, e)
}

// Lookup returns all entries registered under the given group.
func Lookup(group string) []Entry {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var out []Entry
	for _, e := range entries {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

// RegisterModule adds a module to the module table under the given reference.
// Panics if the reference is already taken.
func RegisterModule(ref string, m Module) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := modules[ref]; exists {
		panic("plugin module already registered: " + ref)
	}
	modules[ref] = m
}

// DeregisterModule removes a module from the module table.
// Missing references are ignored.
func DeregisterModule(ref string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(modules, ref)
}

// Import resolves a module reference against the module table.
// Returns *ModuleNotFoundError if no module is registered under ref.
func Import(ref string) (Module, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	m, ok := modules[ref]
	if !ok {
		return nil, &ModuleNotFoundError{Ref: ref}
	}
	return m, nil
}

// Reset clears the registry and the module table. Only for testing.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	entries = nil
	modules = make(map[string]Module)
}
