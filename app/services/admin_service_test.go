package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

func newAdminFixture() (*AdminService, *fakeProductStore, *fakeOrderStore) {
	products := newFakeProductStore()
	orders := newFakeOrderStore()
	return NewAdminService(newFakeAccountStore(), products, orders), products, orders
}

func TestApproveIsIdempotent(t *testing.T) {
	svc, products, _ := newAdminFixture()
	id := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10})

	ctx := context.Background()
	p, err := svc.Approve(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.Approved)

	p, err = svc.Approve(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.Approved)
}

func TestApproveUnknownProduct(t *testing.T) {
	svc, _, _ := newAdminFixture()

	_, err := svc.Approve(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestRejectDeletesUnreferencedProduct(t *testing.T) {
	svc, products, _ := newAdminFixture()
	id := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10})

	ctx := context.Background()
	require.NoError(t, svc.Reject(ctx, id))

	_, err := products.FindByID(ctx, id)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestRejectRefusesProductWithOrders(t *testing.T) {
	svc, products, orders := newAdminFixture()
	id := products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10, Approved: true})

	ctx := context.Background()
	order := models.Order{
		Buyer:  primitive.NewObjectID(),
		Status: models.StatusPending,
		Items:  []models.OrderItem{{Product: id, Name: "lamp", Price: 30, Quantity: 1}},
	}
	require.NoError(t, orders.Create(ctx, &order))

	err := svc.Reject(ctx, id)
	require.ErrorIs(t, err, models.ErrConflict)

	_, err = products.FindByID(ctx, id)
	require.NoError(t, err, "the listing must survive a refused rejection")
}
