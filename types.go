package can

// CheckFunc is a caller-supplied predicate evaluated against a rule's target.
// The target's shape is entirely defined by the calling application; the
// evaluator passes it through untouched. Predicates are assumed to be pure,
// fast, and non-blocking — a predicate that panics propagates to the caller.
type CheckFunc func(target any) bool

// Abilities maps an ability name to its grant flag. An ability absent from
// the map is treated identically to one explicitly set to false.
type Abilities map[string]bool

// Checks maps a check name to its predicate.
type Checks map[string]CheckFunc

// PermissionModule holds everything a principal may do within one named
// module: boolean ability grants and named predicate checks.
//
// PermissionModule instances are intended to be constructed once and then
// treated as immutable; the evaluator never writes to them.
type PermissionModule struct {
	Abilities Abilities
	Checks    Checks
}

// Permissions is the full authorization state for one principal: a mapping
// from module name to [PermissionModule]. It is owned and supplied by the
// caller and is read-only to this package, so a single value may be shared
// across concurrent evaluations without locking.
type Permissions map[string]PermissionModule

// Rule is one access request: "may the principal perform these abilities and
// satisfy these checks (evaluated against Target) in Module?".
//
// All fields are optional. An empty Module means "no module constraint" and
// the rule passes trivially. A nil Target means checks are skipped entirely —
// a check needs a subject to examine, and no subject means no check can fail.
type Rule struct {
	Module    string
	Abilities []string
	Checks    []string
	Target    any
}

// TestRules is a batch of labeled rules, all of which must pass. During
// evaluation each label is forced into its rule's Module field, overriding
// whatever Module value the rule separately carries.
type TestRules map[string]Rule

// Decision is the structured result returned by [Engine.Decide] and
// [Engine.DecideAll]. ID is a per-decision UUID when decision IDs are enabled
// in [DecisionConfig], empty otherwise. FailedModule names the module whose
// rule denied the request, or is empty when Allowed is true.
type Decision struct {
	ID           string
	Allowed      bool
	FailedModule string
}

// Clone deep-copies the map structure of p. Predicate values are shared by
// reference; they are immutable function values.
func (p Permissions) Clone() Permissions {
	if p == nil {
		return nil
	}

	out := make(Permissions, len(p))
	for name, mod := range p {
		cm := PermissionModule{}
		if mod.Abilities != nil {
			cm.Abilities = make(Abilities, len(mod.Abilities))
			for a, granted := range mod.Abilities {
				cm.Abilities[a] = granted
			}
		}
		if mod.Checks != nil {
			cm.Checks = make(Checks, len(mod.Checks))
			for c, fn := range mod.Checks {
				cm.Checks[c] = fn
			}
		}
		out[name] = cm
	}

	return out
}

func clonePermissions(p Permissions) Permissions {
	return p.Clone()
}
