package grants

import (
	"errors"
	"fmt"

	can "github.com/VeselinReljic/go-can"
)

// Builder accumulates per-module ability and check grants and produces a
// can.Permissions value with fresh maps, so the result can be handed to an
// engine without sharing state with the builder.
type Builder struct {
	registry *Registry
	order    []string
	modules  map[string]*moduleSpec
}

type moduleSpec struct {
	abilities map[string]bool
	checks    []string
}

// NewBuilder creates a permissions [Builder]. The registry resolves check
// names at Build time; it may be nil when no module declares checks.
func NewBuilder(registry *Registry) *Builder {
	return &Builder{
		registry: registry,
		modules:  make(map[string]*moduleSpec),
	}
}

// Module selects (creating if needed) the named module for subsequent Allow,
// Deny, and Check calls.
func (b *Builder) Module(name string) *ModuleBuilder {
	spec, ok := b.modules[name]
	if !ok {
		spec = &moduleSpec{abilities: make(map[string]bool)}
		b.modules[name] = spec
		b.order = append(b.order, name)
	}
	return &ModuleBuilder{builder: b, name: name, spec: spec}
}

// Build resolves every declared check against the registry and returns the
// assembled permissions. A check name without a registered predicate is a
// construction error, never a deferred runtime fault.
func (b *Builder) Build() (can.Permissions, error) {
	perms := make(can.Permissions, len(b.modules))

	for _, name := range b.order {
		spec := b.modules[name]

		mod := can.PermissionModule{
			Abilities: make(can.Abilities, len(spec.abilities)),
		}
		for ability, granted := range spec.abilities {
			mod.Abilities[ability] = granted
		}

		if len(spec.checks) > 0 {
			if b.registry == nil {
				return nil, errors.New("checks declared without a registry")
			}
			mod.Checks = make(can.Checks, len(spec.checks))
			for _, check := range spec.checks {
				fn, ok := b.registry.Get(check)
				if !ok {
					return nil, fmt.Errorf("check not registered: %q in module %q", check, name)
				}
				mod.Checks[check] = fn
			}
		}

		perms[name] = mod
	}

	return perms, nil
}

// ModuleBuilder scopes grant accumulation to one module.
type ModuleBuilder struct {
	builder *Builder
	name    string
	spec    *moduleSpec
}

// Allow grants the given abilities.
func (mb *ModuleBuilder) Allow(abilities ...string) *ModuleBuilder {
	for _, a := range abilities {
		mb.spec.abilities[a] = true
	}
	return mb
}

// Deny records the given abilities with an explicit false grant. Evaluation
// treats an explicit false and an absent ability identically; the entry only
// documents the denial in the assembled value.
func (mb *ModuleBuilder) Deny(abilities ...string) *ModuleBuilder {
	for _, a := range abilities {
		mb.spec.abilities[a] = false
	}
	return mb
}

// Check declares the named checks on the module. Names are resolved against
// the registry at Build time.
func (mb *ModuleBuilder) Check(names ...string) *ModuleBuilder {
	mb.spec.checks = append(mb.spec.checks, names...)
	return mb
}

// Module switches to another module, continuing the same builder chain.
func (mb *ModuleBuilder) Module(name string) *ModuleBuilder {
	return mb.builder.Module(name)
}

// Build finishes the chain. Equivalent to calling Build on the parent
// builder.
func (mb *ModuleBuilder) Build() (can.Permissions, error) {
	return mb.builder.Build()
}
