// Package claims moves ability grants through a JWT boundary: a signed token
// carries the compact grants wire form as a claim, and parsing rebinds check
// predicates from a grants.Registry to reconstruct a can.Permissions value.
package claims
