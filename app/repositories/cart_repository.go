package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
	"github.com/kipngetich-lab/TukoShop-App/pkg/database"
)

// CartRepository handles persistence for CartItem. The (buyer, product)
// unique index keeps one line per pair even under concurrent adds.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) coll() *mongo.Collection {
	return database.Collection(database.CollCartItems)
}

// Upsert sets the line for (buyer, product) to qty. Last write wins, not an
// increment. Returns the resulting line.
func (r *CartRepository) Upsert(ctx context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error) {
	now := time.Now().UTC()
	filter := bson.M{"buyer": buyer, "product": product}
	update := bson.M{
		"$set":         bson.M{"quantity": qty, "updated_at": now},
		"$setOnInsert": bson.M{"buyer": buyer, "product": product, "created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var item models.CartItem
	err := r.coll().FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	return item, err
}

// SetQuantity updates an existing line only; ErrNotFound when no line
// exists for the pair.
func (r *CartRepository) SetQuantity(ctx context.Context, buyer, product primitive.ObjectID, qty int64) (models.CartItem, error) {
	filter := bson.M{"buyer": buyer, "product": product}
	update := bson.M{"$set": bson.M{"quantity": qty, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.CartItem
	err := r.coll().FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return item, models.ErrNotFound
	}
	return item, err
}

// Remove deletes the line for (buyer, product). Idempotent: succeeds even
// when no line existed.
func (r *CartRepository) Remove(ctx context.Context, buyer, product primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"buyer": buyer, "product": product})
	return err
}

// ListForBuyer returns all of the buyer's cart lines. Insertion order; no
// ordering guarantee is part of the contract.
func (r *CartRepository) ListForBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.CartItem, error) {
	cursor, err := r.coll().Find(ctx, bson.M{"buyer": buyer})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.CartItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ClearForBuyer deletes exactly the lines consumed by a placement. Scoped to
// the product set rather than the whole cart so a line the buyer added while
// the order was in flight survives.
func (r *CartRepository) ClearForBuyer(ctx context.Context, buyer primitive.ObjectID, products []primitive.ObjectID) error {
	_, err := r.coll().DeleteMany(ctx, bson.M{
		"buyer":   buyer,
		"product": bson.M{"$in": products},
	})
	return err
}
