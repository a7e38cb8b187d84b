package chi

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const tenantContextKey contextKey = "atlas.tenant"

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// DefaultTenant is the tenant id used when authentication is disabled.
const DefaultTenant = "default"

// TenantFromContext returns the tenant id resolved by the auth middleware.
func TenantFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tenantContextKey).(string)
	return t, ok
}

// WithTenant returns a context carrying the given tenant id. Exported for
// tests and non-HTTP callers of the answer service.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenantID)
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens
// and resolves each key to its tenant. The tenant id is placed on the
// request context; handlers never trust a tenant from the request body.
// If keys is empty, authentication is disabled and every request runs
// under DefaultTenant.
func BearerAuthMiddleware(keys map[string]string) func(http.Handler) http.Handler {
	tenants := make(map[string]string, len(keys))
	for k, tenantID := range keys {
		if k != "" && tenantID != "" {
			tenants[k] = tenantID
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled — everything runs as the default tenant
		if len(tenants) == 0 {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), DefaultTenant)))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authorization header must use Bearer scheme")
				return
			}

			tenantID, ok := tenants[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenantID)))
		})
	}
}
