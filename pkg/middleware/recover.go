package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/kipngetich-lab/TukoShop-App/pkg/logger"
	"github.com/kipngetich-lab/TukoShop-App/pkg/response"
)

// Recovery turns a downstream panic into a logged 500 instead of a dropped
// connection. http.ErrAbortHandler is re-raised untouched: the server uses it
// internally to abort a response and it must not be swallowed.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.WithCtx(r.Context()).Error("panic while serving request",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			response.Error(w, http.StatusInternalServerError, "Internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
