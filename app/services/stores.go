package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

// Store interfaces are declared on the consumer side; the mongo
// implementations live in app/repositories and the tests supply in-memory
// fakes.

type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error)
	All(ctx context.Context, page, limit int) ([]models.Account, int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetApproved(ctx context.Context, id primitive.ObjectID, approved bool) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int64) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int64) error
	ListApproved(ctx context.Context, category string) ([]models.Product, error)
	ListBySeller(ctx context.Context, seller primitive.ObjectID) ([]models.Product, error)
	All(ctx context.Context, page, limit int) ([]models.Product, int64, error)
}

type CartStore interface {
	Upsert(ctx context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error)
	SetQuantity(ctx context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error)
	Remove(ctx context.Context, buyer, product primitive.ObjectID) error
	ListForBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.CartItem, error)
	ClearForBuyer(ctx context.Context, buyer primitive.ObjectID, products []primitive.ObjectID) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	FindByIdempotencyKey(ctx context.Context, buyer primitive.ObjectID, key string) (models.Order, error)
	ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error)
	All(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	ExistsForProduct(ctx context.Context, product primitive.ObjectID) (bool, error)
}
