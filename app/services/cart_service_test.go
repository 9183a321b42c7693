package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

func newCartFixture() (*CartService, *fakeCartStore, *fakeProductStore) {
	carts := newFakeCartStore()
	products := newFakeProductStore()
	return NewCartService(carts, products), carts, products
}

func TestCartAddReplacesQuantity(t *testing.T) {
	svc, _, products := newCartFixture()
	buyer := primitive.NewObjectID()
	product := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10, Approved: true})

	ctx := context.Background()
	item, err := svc.AddOrUpdate(ctx, buyer, product, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Quantity)

	// Re-adding overwrites, it does not accumulate.
	item, err = svc.AddOrUpdate(ctx, buyer, product, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity)

	lines, err := svc.List(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(5), lines[0].Item.Quantity)
}

func TestCartRejectsBadQuantity(t *testing.T) {
	svc, _, products := newCartFixture()
	product := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10, Approved: true})

	_, err := svc.AddOrUpdate(context.Background(), primitive.NewObjectID(), product, 0)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCartHidesUnapprovedProducts(t *testing.T) {
	svc, _, products := newCartFixture()
	pending := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10, Approved: false})

	_, err := svc.AddOrUpdate(context.Background(), primitive.NewObjectID(), pending, 1)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestCartSetQuantityRequiresExistingLine(t *testing.T) {
	svc, _, products := newCartFixture()
	product := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10, Approved: true})

	_, err := svc.SetQuantity(context.Background(), primitive.NewObjectID(), product, 3)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	svc, _, _ := newCartFixture()

	err := svc.Remove(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	require.NoError(t, err)
}

func TestCartListSkipsDeletedProducts(t *testing.T) {
	svc, carts, products := newCartFixture()
	buyer := primitive.NewObjectID()
	kept := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10, Approved: true})
	doomed := products.add(models.Product{Name: "rug", Price: 80, Quantity: 4, Approved: true})

	ctx := context.Background()
	_, err := carts.Upsert(ctx, buyer, kept, 1)
	require.NoError(t, err)
	_, err = carts.Upsert(ctx, buyer, doomed, 1)
	require.NoError(t, err)

	require.NoError(t, products.Delete(ctx, doomed))

	lines, err := svc.List(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, kept, lines[0].Product.ID)
}
