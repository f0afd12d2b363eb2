package can

import "context"

type principalContextKey struct{}
type tenantIDContextKey struct{}

// WithPrincipal attaches the principal identifier to ctx. The source package
// uses it to select whose permissions to load.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the principal attached by [WithPrincipal].
func PrincipalFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	principal, _ := ctx.Value(principalContextKey{}).(string)
	if principal == "" {
		return "", false
	}

	return principal, true
}

// WithTenantID attaches a tenant identifier to ctx for multi-tenant key
// isolation in the source package. When absent, the default tenant "0" is
// used.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDContextKey{}, tenantID)
}

// TenantIDFromContext returns the tenant attached by [WithTenantID], or "0".
func TenantIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return "0"
	}

	tenantID, _ := ctx.Value(tenantIDContextKey{}).(string)
	if tenantID == "" {
		return "0"
	}

	return tenantID
}
