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

// ProductRepository handles persistence for Product, including the
// conditional stock mutations the order workflow depends on.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) coll() *mongo.Collection {
	return database.Collection(database.CollProducts)
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}
	res, err := r.coll().InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return product, models.ErrNotFound
	}
	return product, err
}

// Update replaces the mutable listing fields. Stock is NOT written here;
// quantity moves only through the conditional decrement/increment below once
// a product can be ordered, except for the seller's own restock which passes
// through this update.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"category":    product.Category,
		"images":      product.Images,
		"approved":    product.Approved,
		"updated_at":  product.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetApproved flips the approval flag. Idempotent.
func (r *ProductRepository) SetApproved(ctx context.Context, id primitive.ObjectID, approved bool) error {
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"approved":   approved,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DecrementStock atomically reserves qty units, conditioned on the decrement
// not taking quantity below zero. Returns false when another placement
// consumed the stock first: expected contention, not an error.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int64) (bool, error) {
	res, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"quantity": -qty}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// IncrementStock returns qty units; the compensating action for a
// DecrementStock that must be rolled back.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int64) error {
	_, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"quantity": qty}},
	)
	return err
}

// ListApproved returns the public catalogue, optionally filtered by
// category.
func (r *ProductRepository) ListApproved(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{"approved": true}
	if category != "" {
		filter["category"] = category
	}
	return r.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListBySeller returns all of one seller's listings, approved or not.
func (r *ProductRepository) ListBySeller(ctx context.Context, seller primitive.ObjectID) ([]models.Product, error) {
	return r.list(ctx, bson.M{"seller": seller}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// FindByIDs fetches a batch of products keyed by ID.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	products, err := r.list(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// All returns every product (including unapproved) newest first, paginated.
func (r *ProductRepository) All(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	total, err := r.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	products, err := r.list(ctx, bson.M{}, opts)
	return products, total, err
}

func (r *ProductRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cursor, err := r.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
