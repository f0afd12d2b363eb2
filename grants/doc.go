// Package grants provides the construction side of a can.Permissions value:
// a registry of named check predicates, a builder for per-module ability and
// check grants, role composition helpers, and the codec used to move ability
// grants across a claim or storage boundary.
//
// # Registries
//
// Checks are code, never data. A [Registry] maps stable check names to
// predicates; it is populated once at startup, frozen, and then shared
// read-only by the builder, the claims package, and the source package to
// rebind checks onto decoded grants.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. It provides
// the codec (EncodeGrants/DecodeGrants) used by the claims and source
// packages.
//
// # What this package must NOT do
//
//   - Access Redis, databases, or the network.
//   - Evaluate rules (that is the can package's job).
//   - Serialize predicates — only their names cross the wire.
package grants
