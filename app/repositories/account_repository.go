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

// AccountRepository handles persistence for Account.
type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) coll() *mongo.Collection {
	return database.Collection(database.CollAccounts)
}

// Create persists a new account. The unique username index turns races into
// ErrUsernameTaken rather than duplicates.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.CreatedAt = time.Now().UTC()
	res, err := r.coll().InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrUsernameTaken
		}
		return err
	}
	account.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByUsername looks up an account by its unique username.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	var account models.Account
	err := r.coll().FindOne(ctx, bson.M{"username": username}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return account, models.ErrNotFound
	}
	return account, err
}

// FindByID looks up an account by primary key.
func (r *AccountRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	var account models.Account
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return account, models.ErrNotFound
	}
	return account, err
}

// All returns accounts newest first with simple pagination.
func (r *AccountRepository) All(ctx context.Context, page, limit int) ([]models.Account, int64, error) {
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

	accounts := make([]models.Account, 0, limit)
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
