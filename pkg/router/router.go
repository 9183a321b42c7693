// Package router wraps chi with named routes and prefix groups. Naming a
// route lets other code look its path back up (Path, URL) and lets the CLI
// print the full route table.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered named route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	routes map[string]RouteInfo
	mu     sync.RWMutex
}

func New() *Router {
	return &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]RouteInfo),
	}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// Group returns a sub-group rooted at prefix. The root router is itself a
// group with an empty prefix, so Router.Get and Group.Get share one
// registration path.
func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return r.root().Group(prefix, middlewares...)
}

func (r *Router) root() *Group {
	return &Group{router: r}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.root().Get(path, name, h, mw...)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.root().Post(path, name, h, mw...)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.root().Put(path, name, h, mw...)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.root().Delete(path, name, h, mw...)
}

// Path returns the registered path for a named route.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.routes[name]
	return info.Path, ok
}

// Routes returns a snapshot of all registered named routes.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]RouteInfo, 0, len(r.routes))
	for _, info := range r.routes {
		infos = append(infos, info)
	}
	return infos
}

// URL builds a concrete URL for a named route by substituting {param} values.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}

	return path, nil
}

// register is the single registration point shared by the router and all
// groups: it mounts the wrapped handler on chi and records the name.
func (r *Router) register(method, fullPath, name string, h http.Handler) {
	r.mux.Method(method, fullPath, h)

	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = RouteInfo{Method: method, Path: fullPath, Name: name}
}

// Group is a route prefix plus the middleware stack inherited from its
// parents. Groups are cheap values; build them freely.
type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: concat(g.middlewares, middlewares),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodGet, path, name, h, mw)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodPost, path, name, h, mw)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodPut, path, name, h, mw)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodDelete, path, name, h, mw)
}

func (g *Group) handle(method, path, name string, h http.Handler, mw []Middleware) {
	stack := concat(g.middlewares, mw)
	g.router.register(method, joinPath(g.prefix, path), name, chain(h, stack))
}

// chain wraps handler so middlewares run in declaration order.
func chain(handler http.Handler, middlewares []Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// concat returns a fresh slice; groups must never alias a parent's stack.
func concat(a, b []Middleware) []Middleware {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]Middleware, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// joinPath joins and cleans path segments into a rooted path. Empty and
// slash-only segments collapse, so joinPath("", "/api/", "auth") is
// "/api/auth" and joinPath("") is "/".
func joinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}
