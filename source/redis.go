// Package source loads permissions an embedding application has stored in
// Redis. It is strictly a read path: the evaluator never persists anything,
// and this package exposes no write API. Every Load is one Redis round trip;
// nothing is cached.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	can "github.com/VeselinReljic/go-can"
	"github.com/VeselinReljic/go-can/grants"
)

// ErrPermissionsNotFound is returned by Load when no grants exist for the
// principal under the tenant in scope.
var ErrPermissionsNotFound = errors.New("permissions not found")

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

// RedisSource reads the grants codec wire form from Redis keys laid out as
// <prefix>:perm:<tenant>:<principal>. The tenant comes from the context via
// can.WithTenantID, defaulting to "0".
type RedisSource struct {
	client   *redis.Client
	prefix   string
	registry *grants.Registry
}

// NewRedisSource creates a [RedisSource]. The registry rebinds check
// predicates onto decoded grants; it may be nil when stored grants declare
// no checks.
func NewRedisSource(client *redis.Client, prefix string, registry *grants.Registry) (*RedisSource, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if prefix == "" {
		prefix = "can"
	}
	return &RedisSource{
		client:   client,
		prefix:   prefix,
		registry: registry,
	}, nil
}

// Load fetches and decodes the permissions stored for principal. A missing
// key is [ErrPermissionsNotFound]; a transport failure wraps
// [ErrRedisUnavailable]. The decoded value is freshly built per call and
// owned by the caller.
func (s *RedisSource) Load(ctx context.Context, principal string) (can.Permissions, error) {
	if principal == "" {
		return nil, errors.New("principal required")
	}

	key := s.permissionsKey(can.TenantIDFromContext(ctx), principal)

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPermissionsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return grants.DecodeGrants(data, s.registry)
}

// LoadForContext fetches permissions for the principal attached via
// can.WithPrincipal.
func (s *RedisSource) LoadForContext(ctx context.Context) (can.Permissions, error) {
	principal, ok := can.PrincipalFromContext(ctx)
	if !ok {
		return nil, errors.New("no principal in context")
	}
	return s.Load(ctx, principal)
}

func (s *RedisSource) permissionsKey(tenantID, principal string) string {
	return s.prefix + ":perm:" + tenantID + ":" + principal
}
