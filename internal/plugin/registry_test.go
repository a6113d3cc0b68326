package plugin

import (
	"errors"
	"testing"
)

// Compile-time check: AttrMap must implement Module.
var _ Module = AttrMap{}

func TestRegister_Lookup(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(Entry{Group: "cocotb", Name: "mock", Module: "mock_cocotb_plugin"})
	Register(Entry{Group: "cocotb", Name: "other", Module: "other_plugin"})
	Register(Entry{Group: "unrelated", Name: "mock", Module: "unrelated_plugin"})

	got := Lookup("cocotb")
	if len(got) != 2 {
		t.Fatalf("Lookup(cocotb) returned %d entries, want 2", len(got))
	}
	if got[0].Name != "mock" || got[0].Module != "mock_cocotb_plugin" {
		t.Errorf("Lookup(cocotb)[0] = %+v, want mock/mock_cocotb_plugin", got[0])
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(Entry{Group: "cocotb", Name: "mock", Module: "a"})

	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register did not panic")
		}
	}()
	Register(Entry{Group: "cocotb", Name: "mock", Module: "b"})
}

func TestLookup_UnknownGroup(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if got := Lookup("nope"); got != nil {
		t.Errorf("Lookup(nope) = %v, want nil", got)
	}
}

func TestImport(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	mod := AttrMap{"answer": 42}
	RegisterModule("mock_cocotb_plugin", mod)

	got, err := Import("mock_cocotb_plugin")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	v, ok := got.Attr("answer")
	if !ok || v != 42 {
		t.Errorf("Attr(answer) = %v, %v, want 42, true", v, ok)
	}
}

func TestImport_NotFound(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := Import("not_found")
	if err == nil {
		t.Fatal("Import(not_found) error = nil, want error")
	}
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("errors.Is(err, ErrModuleNotFound) = false for %v", err)
	}

	var nf *ModuleNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %v is not *ModuleNotFoundError", err)
	}
	if nf.Ref != "not_found" {
		t.Errorf("ModuleNotFoundError.Ref = %q, want %q", nf.Ref, "not_found")
	}
}

func TestDeregisterModule(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	RegisterModule("m", AttrMap{})
	DeregisterModule("m")

	if _, err := Import("m"); err == nil {
		t.Fatal("Import after DeregisterModule succeeded, want error")
	}

	// Deregistering a missing reference is a no-op.
	DeregisterModule("m")
}

func TestAttrMap_MissingAttribute(t *testing.T) {
	m := AttrMap{"present": "yes"}
	if _, ok := m.Attr("absent"); ok {
		t.Error("Attr(absent) reported ok for missing attribute")
	}
}
