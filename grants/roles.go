package grants

import (
	"errors"
	"sync"

	can "github.com/VeselinReljic/go-can"
)

// RoleManager composes named roles out of permissions values, so an
// application can assemble each role's grants once at startup and hand the
// matching Permissions to an engine per principal.
//
// RoleManager instances are intended to be populated during initialization,
// frozen, and then treated as immutable.
type RoleManager struct {
	mu     sync.RWMutex
	roles  map[string]can.Permissions
	frozen bool
}

// NewRoleManager creates an empty [RoleManager].
func NewRoleManager() *RoleManager {
	return &RoleManager{
		roles: make(map[string]can.Permissions),
	}
}

// RegisterRole stores a deep copy of permissions under the role name. Must
// be called before [RoleManager.Freeze].
func (rm *RoleManager) RegisterRole(roleName string, permissions can.Permissions) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.frozen {
		return errors.New("role manager frozen")
	}

	if roleName == "" {
		return errors.New("role name empty")
	}

	if _, exists := rm.roles[roleName]; exists {
		return errors.New("role already registered")
	}

	rm.roles[roleName] = permissions.Clone()
	return nil
}

// GetPermissions returns the permissions registered for the role, or false
// if the role is unknown. The returned value is shared and must be treated
// as read-only; pass it to a builder or engine, never mutate it.
func (rm *RoleManager) GetPermissions(roleName string) (can.Permissions, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	perms, ok := rm.roles[roleName]
	return perms, ok
}

// Freeze prevents further role registrations.
func (rm *RoleManager) Freeze() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.frozen = true
}

// Count returns the number of registered roles.
func (rm *RoleManager) Count() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.roles)
}
