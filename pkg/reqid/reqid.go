// Package reqid assigns every HTTP request a unique ID, propagates it through
// the request context and the X-Request-ID response header, and makes it
// available to structured logging via logger.WithCtx(ctx).
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

type ctxKey struct{}

// Header is the HTTP header used to carry the request ID across hops.
const Header = "X-Request-ID"

// New returns a random 32-character hex request ID.
func New() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// WithValue stores id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID stored in ctx, or "" when absent.
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware tags the request with an ID. An upstream X-Request-ID (e.g. set
// by a proxy) is trusted and reused so traces correlate across hops; otherwise
// a fresh ID is generated. The ID is echoed back on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = New()
		}

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
	})
}
