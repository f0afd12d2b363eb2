package grants

import (
	"testing"

	can "github.com/VeselinReljic/go-can"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("isAdmin", func(target any) bool { return true }); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := reg.Register("hasAccess", func(target any) bool { return false }); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	fn, ok := reg.Get("isAdmin")
	if !ok {
		t.Fatalf("expected isAdmin to be registered")
	}
	if !fn(nil) {
		t.Fatalf("expected isAdmin predicate to return true")
	}

	if _, ok := reg.Get("missing"); ok {
		t.Fatalf("expected missing check to be absent")
	}
	if reg.Count() != 2 {
		t.Fatalf("expected 2 checks, got %d", reg.Count())
	}
}

func TestRegistryRejectsInvalidRegistrations(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("", func(target any) bool { return true }); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := reg.Register("isAdmin", nil); err == nil {
		t.Fatalf("expected nil predicate to fail")
	}
	if err := reg.Register("isAdmin", func(target any) bool { return true }); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := reg.Register("isAdmin", func(target any) bool { return true }); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegistryFreeze(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()

	if err := reg.Register("late", func(target any) bool { return true }); err == nil {
		t.Fatalf("expected registration after freeze to fail")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	var fn can.CheckFunc = func(target any) bool { return true }

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(name, fn); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}

	names := reg.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected names %v, got %v", want, names)
		}
	}
}
