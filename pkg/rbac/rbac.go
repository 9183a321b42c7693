// Package rbac gates routes by marketplace role.
package rbac

import (
	"net/http"
	"slices"

	"github.com/kipngetich-lab/TukoShop-App/pkg/middleware"
	"github.com/kipngetich-lab/TukoShop-App/pkg/response"
)

// Marketplace roles. Fixed at signup; there is no elevation path, and admin
// accounts are only minted through the admin:create command.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// HasRole returns middleware that admits only callers holding one of the
// given roles. middleware.Authenticate must run earlier in the chain; an
// unauthenticated request has no role and is rejected.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := slices.Clone(roles)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok || !slices.Contains(allowed, role) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
