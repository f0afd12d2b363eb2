package grants

import (
	"testing"

	can "github.com/VeselinReljic/go-can"
)

func TestRoleManagerRegisterAndGet(t *testing.T) {
	rm := NewRoleManager()

	member := can.Permissions{
		"documents": {Abilities: can.Abilities{"read": true}},
	}
	admin := can.Permissions{
		"documents": {Abilities: can.Abilities{"read": true, "write": true}},
	}

	if err := rm.RegisterRole("member", member); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := rm.RegisterRole("admin", admin); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	rm.Freeze()

	if rm.Count() != 2 {
		t.Fatalf("expected 2 roles, got %d", rm.Count())
	}

	perms, ok := rm.GetPermissions("member")
	if !ok {
		t.Fatalf("expected member role")
	}
	if can.Matches(perms, can.Rule{Module: "documents", Abilities: []string{"write"}}) {
		t.Fatalf("expected member role to lack write")
	}

	if _, ok := rm.GetPermissions("ghost"); ok {
		t.Fatalf("expected unknown role to be absent")
	}
}

func TestRoleManagerRejectsInvalidRegistrations(t *testing.T) {
	rm := NewRoleManager()

	if err := rm.RegisterRole("", can.Permissions{}); err == nil {
		t.Fatalf("expected empty role name to fail")
	}
	if err := rm.RegisterRole("member", can.Permissions{}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := rm.RegisterRole("member", can.Permissions{}); err == nil {
		t.Fatalf("expected duplicate role to fail")
	}

	rm.Freeze()
	if err := rm.RegisterRole("late", can.Permissions{}); err == nil {
		t.Fatalf("expected registration after freeze to fail")
	}
}

func TestRoleManagerStoresACopy(t *testing.T) {
	rm := NewRoleManager()

	source := can.Permissions{
		"documents": {Abilities: can.Abilities{"read": true}},
	}
	if err := rm.RegisterRole("member", source); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	source["documents"].Abilities["write"] = true

	perms, _ := rm.GetPermissions("member")
	if can.Matches(perms, can.Rule{Module: "documents", Abilities: []string{"write"}}) {
		t.Fatalf("expected registered role to be isolated from caller mutation")
	}
}
