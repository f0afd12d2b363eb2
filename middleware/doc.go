// Package middleware adapts the can evaluator to HTTP request handling.
//
// [Guard] evaluates a fixed batch of labeled rules per request and rejects
// with 403 on denial; the resulting can.Decision is injected into the
// request context for downstream handlers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into engine calls. It does NOT make
// authorization decisions itself — all policy lives in the bound engine and
// its permissions.
//
// # What this package must NOT do
//
//   - Build or mutate Permissions values.
//   - Perform I/O beyond writing the HTTP response.
//   - Swallow engine faults: a strict-mode unknown check is a 500, not a 403.
package middleware
