package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
	"github.com/kipngetich-lab/TukoShop-App/pkg/logger"
)

// AdminService covers moderation and the platform-wide listings only admins
// may see.
type AdminService struct {
	accounts AccountStore
	products ProductStore
	orders   OrderStore
}

func NewAdminService(accounts AccountStore, products ProductStore, orders OrderStore) *AdminService {
	return &AdminService{accounts: accounts, products: products, orders: orders}
}

// ListUsers returns all accounts, paginated.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int) ([]models.Account, int64, error) {
	return s.accounts.All(ctx, page, limit)
}

// ListProducts returns all listings including unapproved ones, paginated.
func (s *AdminService) ListProducts(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	return s.products.All(ctx, page, limit)
}

// Approve makes a listing publicly visible. Approving an already-approved
// product is a no-op.
func (s *AdminService) Approve(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if product.Approved {
		return product, nil
	}
	if err := s.products.SetApproved(ctx, id, true); err != nil {
		return models.Product{}, err
	}
	product.Approved = true
	logger.WithCtx(ctx).Info("product approved", "product_id", id.Hex(), "name", product.Name)
	return product, nil
}

// Reject deletes a listing outright. A product referenced by any order cannot
// be rejected; it fails ErrConflict and the admin has to resolve those orders
// first.
func (s *AdminService) Reject(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.orders.ExistsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: product is referenced by existing orders", models.ErrConflict)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("product rejected", "product_id", id.Hex())
	return nil
}
