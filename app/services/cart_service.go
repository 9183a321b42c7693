package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

// CartService maintains one quantity-bearing line per (buyer, product).
//
// Deliberately no stock check here beyond existence and approval: carts may
// hold more than available stock, and order placement is the enforcement
// point.
type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddOrUpdate upserts the line to qty. Last write wins, not incremented.
func (s *CartService) AddOrUpdate(ctx context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error) {
	if err := s.checkProduct(ctx, product, qty); err != nil {
		return models.CartItem{}, err
	}
	return s.carts.Upsert(ctx, buyer, product, qty)
}

// SetQuantity updates an existing line; ErrNotFound if none exists.
func (s *CartService) SetQuantity(ctx context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error) {
	if err := s.checkProduct(ctx, product, qty); err != nil {
		return models.CartItem{}, err
	}
	return s.carts.SetQuantity(ctx, buyer, product, qty)
}

// Remove deletes the line. Idempotent.
func (s *CartService) Remove(ctx context.Context, buyer, product primitive.ObjectID) error {
	return s.carts.Remove(ctx, buyer, product)
}

// List returns the buyer's cart lines with product details resolved.
// Lines whose product has been deleted since are skipped rather than
// failing the whole listing.
func (s *CartService) List(ctx context.Context, buyer primitive.ObjectID) ([]models.CartLine, error) {
	items, err := s.carts.ListForBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.CartLine{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Product)
	}
	byID, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.Product]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{Item: item, Product: product})
	}
	return lines, nil
}

func (s *CartService) checkProduct(ctx context.Context, product primitive.ObjectID, qty int64) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", models.ErrInvalidInput)
	}

	p, err := s.products.FindByID(ctx, product)
	if err != nil {
		return err
	}
	if !p.Approved {
		// Unapproved listings are invisible to buyers.
		return models.ErrNotFound
	}
	return nil
}
