package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kipngetich-lab/TukoShop-App/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	if !found {
		t.Fatal("expected route to be registered")
	}
	if path != "/products/{id}" {
		t.Errorf("unexpected path: %s", path)
	}

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("URL failed: %v", err)
	}
	if url != "/products/42" {
		t.Errorf("unexpected url: %s", url)
	}
}

func TestURLMissingParams(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupsNestAndServe(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	admin := api.Group("/admin")
	admin.Get("/users", "admin.users", ok)

	path, found := r.Path("admin.users")
	if !found || path != "/api/admin/users" {
		t.Fatalf("unexpected path: %q found=%v", path, found)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", mw("outer"))
	g.Get("/ping", "ping", ok, mw("inner"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("unexpected middleware order: %v", order)
	}
}

func TestRoutesSnapshot(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.Put("/c", "", ok) // unnamed routes are not listed

	if got := len(r.Routes()); got != 2 {
		t.Errorf("expected 2 named routes, got %d", got)
	}
}
