// Package plugin implements the extension-point registry through which
// installed packages advertise alternative implementations of cocotb
// components, keyed by (group, name).
//
// Registration is explicit and happens at init time: a plugin package
// registers an Entry pointing at a module reference, and registers the
// module itself (a table of named attributes) under that reference.
// Nothing is probed reflectively at resolution time.
package plugin

// Entry describes one registered extension point.
// Group identifies the extension point (e.g. "cocotb"), Name is the
// plugin identifier users select, and Module is an opaque reference
// resolvable through Import.
type Entry struct {
	Group  string
	Name   string
	Module string
}

// Module is a loaded plugin module: a read-only table of named attributes.
type Module interface {
	// Attr returns the named attribute and whether it exists.
	Attr(name string) (any, bool)
}

// AttrMap is the map-backed Module implementation plugin packages use.
type AttrMap map[string]any

// Attr implements Module.
func (m AttrMap) Attr(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}
