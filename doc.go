// Package can provides a declarative authorization evaluator: given a static
// map of a principal's granted abilities and named predicate checks per module,
// it decides whether a requested access rule is satisfied.
//
// The core surface is two pure functions, [Matches] and [AllAllowed], plus an
// [Engine] wrapper (built through [New]) that binds a Permissions value once
// and adds strict check resolution, decision IDs, and counters. All evaluation
// is synchronous and side-effect free; a [Permissions] value shared read-only
// across goroutines needs no locking.
//
// # Architecture boundaries
//
// can is a decision function, not an authorization service. It owns no
// identity, session, or storage concerns: the caller constructs and owns the
// [Permissions] value (the grants, claims, and source subpackages exist to
// build one from code, a token claim, or Redis) and calls the evaluator per
// decision.
//
// # What this package must NOT do
//
//   - Mutate a caller-supplied Permissions, Rule, or TestRules value.
//   - Perform I/O of any kind during evaluation.
//   - Recover panics raised by caller-supplied check predicates.
//   - Cache or memoize decisions across calls.
//
// # Performance contract
//
// Matches is the hot path. It must not allocate and must complete with map
// lookups and predicate calls only; Engine.Decide is allowed one allocation
// for the returned Decision (plus the UUID when decision IDs are enabled).
package can
