package controllers

import (
	"github.com/kipngetich-lab/TukoShop-App/app/services"
	"github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// Index handles GET /api/cart.
func (cc *CartController) Index(c *ctx.Context) {
	buyer, ok := callerID(c)
	if !ok {
		return
	}

	lines, err := cc.cart.List(c.Context(), buyer)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(lines)
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity"   validate:"required,gte=1"`
}

// Store handles POST /api/cart. It adds a product or replaces the quantity of
// an existing line.
func (cc *CartController) Store(c *ctx.Context) {
	buyer, ok := callerID(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if !c.BindJSON(&req) {
		return
	}
	product, ok := hexID(c, req.ProductID, "product_id")
	if !ok {
		return
	}

	item, err := cc.cart.AddOrUpdate(c.Context(), buyer, product, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(item)
}

// Update handles PUT /api/cart. It sets the quantity of an existing line.
func (cc *CartController) Update(c *ctx.Context) {
	buyer, ok := callerID(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if !c.BindJSON(&req) {
		return
	}
	product, ok := hexID(c, req.ProductID, "product_id")
	if !ok {
		return
	}

	item, err := cc.cart.SetQuantity(c.Context(), buyer, product, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(item)
}

// Delete handles DELETE /api/cart/{productId}. Removing an absent line
// succeeds.
func (cc *CartController) Delete(c *ctx.Context) {
	buyer, ok := callerID(c)
	if !ok {
		return
	}
	product, ok := objectID(c, "productId")
	if !ok {
		return
	}

	if err := cc.cart.Remove(c.Context(), buyer, product); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"removed": product.Hex()})
}
