package controllers

import (
	"github.com/kipngetich-lab/TukoShop-App/app/services"
	"github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Store handles POST /api/orders. It places an order from the caller's cart.
// An Idempotency-Key header makes retries safe: a replayed key returns the
// order the first attempt committed.
func (oc *OrderController) Store(c *ctx.Context) {
	buyer, ok := callerID(c)
	if !ok {
		return
	}

	order, err := oc.orders.PlaceOrder(c.Context(), buyer, c.MustIdentity().Username, c.Header("Idempotency-Key"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// Index handles GET /api/orders: the caller's order history, newest first.
func (oc *OrderController) Index(c *ctx.Context) {
	buyer, ok := callerID(c)
	if !ok {
		return
	}

	orders, err := oc.orders.ListForBuyer(c.Context(), buyer)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}
