package controllers

import (
	"github.com/kipngetich-lab/TukoShop-App/app/services"
	"github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
	"github.com/kipngetich-lab/TukoShop-App/pkg/response"
)

type AdminController struct {
	admin  *services.AdminService
	orders *services.OrderService
}

func NewAdminController(admin *services.AdminService, orders *services.OrderService) *AdminController {
	return &AdminController{admin: admin, orders: orders}
}

// Users handles GET /api/admin/users.
func (ac *AdminController) Users(c *ctx.Context) {
	page, limit := pageParams(c)
	accounts, total, err := ac.admin.ListUsers(c.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(accounts, response.NewPagination(page, limit, total))
}

// Products handles GET /api/admin/products: all listings, pending included.
func (ac *AdminController) Products(c *ctx.Context) {
	page, limit := pageParams(c)
	products, total, err := ac.admin.ListProducts(c.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(products, response.NewPagination(page, limit, total))
}

// Approve handles POST /api/admin/products/{id}/approve.
func (ac *AdminController) Approve(c *ctx.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	product, err := ac.admin.Approve(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Reject handles POST /api/admin/products/{id}/reject. Products referenced
// by orders cannot be rejected (409).
func (ac *AdminController) Reject(c *ctx.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	if err := ac.admin.Reject(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"rejected": id.Hex()})
}

// Orders handles GET /api/admin/orders.
func (ac *AdminController) Orders(c *ctx.Context) {
	page, limit := pageParams(c)
	orders, total, err := ac.orders.All(c.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(orders, response.NewPagination(page, limit, total))
}

type statusRequest struct {
	Status string `json:"status" validate:"required,in=Pending,Shipped,Delivered"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/{id}. Status only
// moves forward: Pending, then Shipped, then Delivered.
func (ac *AdminController) UpdateOrderStatus(c *ctx.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	var req statusRequest
	if !c.BindJSON(&req) {
		return
	}

	if err := ac.orders.UpdateStatus(c.Context(), id, req.Status); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"id": id.Hex(), "status": req.Status})
}
