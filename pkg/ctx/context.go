// Package ctx provides a compact request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for params, identity, binding and
// JSON responses:
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    id := c.Param("id")
//	    ...
//	    c.Success(product)
//	}
//
//	// Register with ctx.Wrap:
//	api.Get("/products/{id}", "products.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/kipngetich-lab/TukoShop-App/pkg/bind"
	"github.com/kipngetich-lab/TukoShop-App/pkg/middleware"
	"github.com/kipngetich-lab/TukoShop-App/pkg/response"
	"github.com/kipngetich-lab/TukoShop-App/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Context wraps a request/response pair and provides a helper API.
// Contexts are pooled; never retain one past the handler's return.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{New: func() any { return new(Context) }}

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := pool.Get().(*Context)
		c.W, c.R = w, r
		defer func() {
			c.W, c.R = nil, nil
			pool.Put(c)
		}()
		h(c)
	}
}

// Param returns a URL path parameter (e.g. "/products/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, or "" when absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt parses a query-string value as an int, falling back to def when
// the value is absent or malformed.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Identity returns the authenticated caller, if any.
func (c *Context) Identity() (middleware.Identity, bool) {
	return middleware.IdentityFromCtx(c.R.Context())
}

// MustIdentity returns the authenticated caller; only call behind
// middleware.Authenticate.
func (c *Context) MustIdentity() middleware.Identity {
	ident, _ := middleware.IdentityFromCtx(c.R.Context())
	return ident
}

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it sends a 422 response and returns false.
// On JSON decode error it sends a 400 and returns false.
// Returns true only when dest is valid and ready to use.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		response.Error(c.W, http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		response.ValidationError(c.W, errs)
		return false
	}
	return true
}

// Success sends a 200 JSON envelope.
func (c *Context) Success(data any) { response.Success(c.W, data) }

// Created sends a 201 JSON envelope.
func (c *Context) Created(data any) { response.Created(c.W, data) }

// Paginated sends a 200 envelope with items and page metadata.
func (c *Context) Paginated(data any, p response.Pagination) {
	response.Paginated(c.W, data, p)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// Unauthorized sends a 401.
func (c *Context) Unauthorized() { response.Unauthorized(c.W) }

// Forbidden sends a 403.
func (c *Context) Forbidden() { response.Forbidden(c.W) }

// NotFound sends a 404, optionally with a custom message.
func (c *Context) NotFound(message ...string) {
	msg := "Not found"
	if len(message) > 0 {
		msg = message[0]
	}
	response.Error(c.W, http.StatusNotFound, msg)
}
