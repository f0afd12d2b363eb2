package can

import "fmt"

// moduleUndefined accommodates callers that move rules through a text
// boundary where an absent module serializes to the string "undefined".
// Treated the same as an empty Module.
const moduleUndefined = "undefined"

// Matches evaluates one rule against permissions. Evaluation short-circuits
// on the first failing condition:
//
//  1. A rule with no module constraint passes trivially.
//  2. A module not present in permissions denies.
//  3. Every named ability must be granted true in the resolved module;
//     an absent ability denies the same as an explicit false.
//  4. When the rule carries a non-nil Target, every named check's predicate
//     must return true for it. A check name the module does not declare
//     denies — a missing predicate can never vouch for the target. When
//     Target is nil the checks step is skipped entirely.
//
// Denial is a false return, never an error. Matches performs no I/O and does
// not mutate its arguments. Callers that need an unresolvable check name
// surfaced as a fault instead of a denial use [Engine.Decide] with
// [CheckConfig].Strict.
func Matches(permissions Permissions, rule Rule) bool {
	allowed, _ := matchRule(permissions, rule)
	return allowed
}

// AllAllowed evaluates a batch of labeled rules against permissions,
// requiring every one to pass. Each label overrides its rule's Module field.
// An empty batch passes vacuously. Evaluation stops at the first failing
// rule; map iteration order has no effect on the result, only on which rule
// happens to be evaluated last.
func AllAllowed(permissions Permissions, rules TestRules) bool {
	for label, rule := range rules {
		rule.Module = label
		if !Matches(permissions, rule) {
			return false
		}
	}
	return true
}

// matchRule is the single evaluation path shared by the pure functions and
// the Engine. An unresolvable check name is reported as ErrUnknownCheck with
// a false result; Matches folds that into a denial, the Engine decides per
// its strict-mode configuration.
func matchRule(permissions Permissions, rule Rule) (bool, error) {
	if rule.Module == "" || rule.Module == moduleUndefined {
		return true, nil
	}

	mod, ok := permissions[rule.Module]
	if !ok {
		return false, nil
	}

	for _, name := range rule.Abilities {
		if !mod.Abilities[name] {
			return false, nil
		}
	}

	if rule.Target != nil {
		for _, name := range rule.Checks {
			check, ok := mod.Checks[name]
			if !ok || check == nil {
				return false, fmt.Errorf("%w: %q in module %q", ErrUnknownCheck, name, rule.Module)
			}
			if !check(rule.Target) {
				return false, nil
			}
		}
	}

	return true, nil
}
