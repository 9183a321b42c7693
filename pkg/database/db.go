// Package database owns the shared MongoDB client. All entity access goes
// through the collection accessors here; no other component opens its own
// connection.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kipngetich-lab/TukoShop-App/config"
)

// Collection names for the four marketplace collections.
const (
	CollAccounts  = "accounts"
	CollProducts  = "products"
	CollCartItems = "cart_items"
	CollOrders    = "orders"
)

var (
	Client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client, verifies it with a ping and configures
// the pool. Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetMaxPoolSize(25).
		SetMaxConnIdleTime(2 * time.Minute).
		SetTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	db = client.Database(config.MongoDB())
	return nil
}

// Disconnect closes the shared client.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

// Collection returns a handle to a named collection on the app database.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// EnsureIndexes creates the uniqueness and lookup indexes the schema relies
// on. Idempotent; run at boot and from the db:indexes command.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := Collection(CollAccounts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("database: accounts index: %w", err)
	}

	_, err = Collection(CollCartItems).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "buyer", Value: 1}, {Key: "product", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("database: cart_items index: %w", err)
	}

	_, err = Collection(CollProducts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller", Value: 1}}},
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("database: products indexes: %w", err)
	}

	_, err = Collection(CollOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "created_at", Value: -1}}},
		// Partial, not sparse: a sparse compound index still indexes a
		// document when any indexed field is present, and buyer always is,
		// so keyless orders would collide on (buyer, null). The filter
		// limits uniqueness to orders that actually carry a key.
		{
			Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "items.product", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("database: orders indexes: %w", err)
	}

	return nil
}
