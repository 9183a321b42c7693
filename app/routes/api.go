// Package routes registers the HTTP surface of the application.
package routes

import (
	"net/http"
	"time"

	"github.com/kipngetich-lab/TukoShop-App/app/controllers"
	appctx "github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
	"github.com/kipngetich-lab/TukoShop-App/pkg/metrics"
	"github.com/kipngetich-lab/TukoShop-App/pkg/middleware"
	"github.com/kipngetich-lab/TukoShop-App/pkg/rbac"
	"github.com/kipngetich-lab/TukoShop-App/pkg/router"
)

// Controllers bundles everything the route table needs.
type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Admin   *controllers.AdminController
}

// Register mounts all routes on r. Global middleware (request id, logging,
// recovery, CORS, metrics) is attached by the server before this runs.
func Register(r *router.Router, c Controllers) {
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Credential endpoints are brute-force targets; keep them rate limited.
	auth := api.Group("/auth", middleware.RateLimit(10, time.Minute))
	auth.Post("/signup", "auth.signup", appctx.Wrap(c.Auth.Signup))
	auth.Post("/login", "auth.login", appctx.Wrap(c.Auth.Login))

	products := api.Group("/products")
	products.Get("/", "products.index", appctx.Wrap(c.Product.Index))
	products.Get("/mine", "products.mine", appctx.Wrap(c.Product.Mine),
		middleware.Authenticate, rbac.HasRole(rbac.RoleSeller))
	products.Get("/{id}", "products.show", appctx.Wrap(c.Product.Show), middleware.OptionalAuth)
	products.Post("/", "products.store", appctx.Wrap(c.Product.Store),
		middleware.Authenticate, rbac.HasRole(rbac.RoleSeller))
	products.Put("/{id}", "products.update", appctx.Wrap(c.Product.Update),
		middleware.Authenticate, rbac.HasRole(rbac.RoleSeller))
	products.Delete("/{id}", "products.delete", appctx.Wrap(c.Product.Delete),
		middleware.Authenticate, rbac.HasRole(rbac.RoleSeller))

	cart := api.Group("/cart", middleware.Authenticate, rbac.HasRole(rbac.RoleBuyer))
	cart.Get("/", "cart.index", appctx.Wrap(c.Cart.Index))
	cart.Post("/", "cart.store", appctx.Wrap(c.Cart.Store))
	cart.Put("/", "cart.update", appctx.Wrap(c.Cart.Update))
	cart.Delete("/{productId}", "cart.delete", appctx.Wrap(c.Cart.Delete))

	orders := api.Group("/orders", middleware.Authenticate, rbac.HasRole(rbac.RoleBuyer))
	orders.Post("/", "orders.store", appctx.Wrap(c.Order.Store))
	orders.Get("/", "orders.index", appctx.Wrap(c.Order.Index))

	admin := api.Group("/admin", middleware.Authenticate, rbac.HasRole(rbac.RoleAdmin))
	admin.Get("/users", "admin.users", appctx.Wrap(c.Admin.Users))
	admin.Get("/products", "admin.products", appctx.Wrap(c.Admin.Products))
	admin.Post("/products/{id}/approve", "admin.products.approve", appctx.Wrap(c.Admin.Approve))
	admin.Post("/products/{id}/reject", "admin.products.reject", appctx.Wrap(c.Admin.Reject))
	admin.Get("/orders", "admin.orders", appctx.Wrap(c.Admin.Orders))
	admin.Put("/orders/{id}", "admin.orders.status", appctx.Wrap(c.Admin.UpdateOrderStatus))
}
