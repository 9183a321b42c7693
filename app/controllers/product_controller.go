package controllers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/services"
	"github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index handles GET /api/products: the public, approved-only catalog.
// Supports ?category= filtering.
func (pc *ProductController) Index(c *ctx.Context) {
	products, err := pc.catalog.ListApproved(c.Context(), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(products)
}

// Show handles GET /api/products/{id}. Anonymous callers and buyers see
// approved listings only; the owning seller and admins also see pending ones.
func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	viewer := primitive.NilObjectID
	role := ""
	if ident, ok := c.Identity(); ok {
		role = ident.Role
		if parsed, err := primitive.ObjectIDFromHex(ident.ID); err == nil {
			viewer = parsed
		}
	}

	product, err := pc.catalog.Get(c.Context(), id, viewer, role)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Mine handles GET /api/products/mine: the seller's own listings.
func (pc *ProductController) Mine(c *ctx.Context) {
	seller, ok := callerID(c)
	if !ok {
		return
	}

	products, err := pc.catalog.ListMine(c.Context(), seller)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(products)
}

type productRequest struct {
	Name        string   `json:"name"        validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"nullable,max=5000"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Quantity    int64    `json:"quantity"    validate:"gte=0,integer"`
	Category    string   `json:"category"    validate:"nullable,max=100"`
	Images      []string `json:"images"      validate:"nullable"`
}

// Store handles POST /api/products. New listings await approval.
func (pc *ProductController) Store(c *ctx.Context) {
	seller, ok := callerID(c)
	if !ok {
		return
	}

	var req productRequest
	if !c.BindJSON(&req) {
		return
	}

	product, err := pc.catalog.Create(c.Context(), seller, c.MustIdentity().Username, services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Images:      req.Images,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(product)
}

type productUpdateRequest struct {
	Name        *string   `json:"name"        validate:"nullable,min=2,max=200"`
	Description *string   `json:"description" validate:"nullable,max=5000"`
	Price       *float64  `json:"price"       validate:"nullable,gte=0"`
	Quantity    *int64    `json:"quantity"    validate:"nullable,gte=0"`
	Category    *string   `json:"category"    validate:"nullable,max=100"`
	Images      *[]string `json:"images"      validate:"nullable"`
}

// Update handles PUT /api/products/{id}: a partial edit of an own listing.
// An edit sends the listing back through moderation.
func (pc *ProductController) Update(c *ctx.Context) {
	seller, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	var req productUpdateRequest
	if !c.BindJSON(&req) {
		return
	}

	product, err := pc.catalog.Update(c.Context(), seller, id, services.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Images:      req.Images,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Delete handles DELETE /api/products/{id}.
func (pc *ProductController) Delete(c *ctx.Context) {
	seller, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := objectID(c, "id")
	if !ok {
		return
	}

	if err := pc.catalog.Delete(c.Context(), seller, id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"deleted": id.Hex()})
}
