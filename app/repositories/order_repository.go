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

// OrderRepository handles persistence for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) coll() *mongo.Collection {
	return database.Collection(database.CollOrders)
}

// Create persists the immutable order snapshot. A duplicate idempotency key
// surfaces as ErrConflict so the workflow can return the original order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	order.CreatedAt = time.Now().UTC()
	res, err := r.coll().InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrConflict
		}
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return order, models.ErrNotFound
	}
	return order, err
}

// FindByIdempotencyKey returns the order a previous attempt with the same
// key committed, if any.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, buyer primitive.ObjectID, key string) (models.Order, error) {
	var order models.Order
	err := r.coll().FindOne(ctx, bson.M{"buyer": buyer, "idempotency_key": key}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return order, models.ErrNotFound
	}
	return order, err
}

// ListByBuyer returns the buyer's order history, newest first.
func (r *OrderRepository) ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll().Find(ctx, bson.M{"buyer": buyer}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// All returns every order newest first, paginated, for the admin view.
func (r *OrderRepository) All(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	total, err := r.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0, limit)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus sets the status field. Transition legality is the service's
// concern; this is a plain conditional write on existence.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ExistsForProduct reports whether any order references the product. Used to
// refuse destructive rejection of products with order history.
func (r *OrderRepository) ExistsForProduct(ctx context.Context, product primitive.ObjectID) (bool, error) {
	err := r.coll().FindOne(ctx, bson.M{"items.product": product},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
