package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kipngetich-lab/TukoShop-App/pkg/auth"
	"github.com/kipngetich-lab/TukoShop-App/pkg/response"
)

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	ID       string
	Username string
	Role     string
}

type identityKey struct{}

// Authenticate resolves the Authorization bearer token into an Identity and
// stores it in the request context. Missing or invalid tokens get a 401.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := resolveIdentity(r)
		if !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
	})
}

// OptionalAuth resolves an identity when a valid bearer token is present but
// lets anonymous requests through. Used on endpoints whose visibility widens
// for owners and admins (e.g. unapproved product detail).
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ident, ok := resolveIdentity(r); ok {
			r = r.WithContext(withIdentity(r.Context(), ident))
		}
		next.ServeHTTP(w, r)
	})
}

func resolveIdentity(r *http.Request) (Identity, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return Identity{}, false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return Identity{}, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return Identity{}, false
	}

	return Identity{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, true
}

func withIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromCtx returns the authenticated identity stored by Authenticate.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok
}

// RoleFromCtx returns the role of the authenticated identity, if any.
func RoleFromCtx(ctx context.Context) (string, bool) {
	ident, ok := IdentityFromCtx(ctx)
	return ident.Role, ok
}
