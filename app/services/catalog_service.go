package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

// CatalogService implements the seller-facing product lifecycle and the
// public browse surface. New and edited listings start unapproved and stay
// invisible to buyers until an admin approves them.
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// ProductInput carries the seller-editable listing fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int64
	Category    string
	Images      []string
}

// ProductUpdate carries a partial edit; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int64
	Category    *string
	Images      *[]string
}

// ListApproved returns the public catalog, optionally filtered by category.
func (s *CatalogService) ListApproved(ctx context.Context, category string) ([]models.Product, error) {
	return s.products.ListApproved(ctx, category)
}

// Get returns a product if the viewer may see it: approved listings are
// public, unapproved ones are visible only to their seller and admins.
func (s *CatalogService) Get(ctx context.Context, id, viewer primitive.ObjectID, viewerRole string) (models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !product.Approved && viewerRole != models.RoleAdmin && product.Seller != viewer {
		// Existence of a pending listing is not disclosed.
		return models.Product{}, models.ErrNotFound
	}
	return product, nil
}

// ListMine returns the seller's own listings regardless of approval state.
func (s *CatalogService) ListMine(ctx context.Context, seller primitive.ObjectID) ([]models.Product, error) {
	return s.products.ListBySeller(ctx, seller)
}

// Create adds an unapproved listing owned by the seller.
func (s *CatalogService) Create(ctx context.Context, seller primitive.ObjectID, sellerUsername string, in ProductInput) (models.Product, error) {
	if err := checkListing(in.Name, in.Price, in.Quantity); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Seller:         seller,
		SellerUsername: sellerUsername,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Quantity:       in.Quantity,
		Category:       in.Category,
		Images:         in.Images,
		Approved:       false,
	}
	if err := s.products.Create(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update applies a partial edit to the seller's own listing. Any edit drops
// the approved flag so the listing goes back through moderation.
func (s *CatalogService) Update(ctx context.Context, seller, id primitive.ObjectID, in ProductUpdate) (models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if product.Seller != seller {
		return models.Product{}, models.ErrForbidden
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if err := checkListing(product.Name, product.Price, product.Quantity); err != nil {
		return models.Product{}, err
	}

	product.Approved = false
	if err := s.products.Update(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes the seller's own listing. Orders that reference it keep
// their snapshotted name and price, so no guard is needed here.
func (s *CatalogService) Delete(ctx context.Context, seller, id primitive.ObjectID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.Seller != seller {
		return models.ErrForbidden
	}
	return s.products.Delete(ctx, id)
}

func checkListing(name string, price float64, quantity int64) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", models.ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", models.ErrInvalidInput)
	}
	return nil
}
