package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
)

func TestCreateListingStartsUnapproved(t *testing.T) {
	products := newFakeProductStore()
	svc := NewCatalogService(products)
	seller := primitive.NewObjectID()

	product, err := svc.Create(context.Background(), seller, "wanjiku", ProductInput{
		Name: "lamp", Price: 30, Quantity: 10, Category: "home",
	})
	require.NoError(t, err)
	assert.False(t, product.Approved)
	assert.Equal(t, seller, product.Seller)
	assert.Equal(t, "wanjiku", product.SellerUsername)
}

func TestUpdateListingDropsApproval(t *testing.T) {
	products := newFakeProductStore()
	svc := NewCatalogService(products)
	seller := primitive.NewObjectID()
	id := products.add(models.Product{Seller: seller, Name: "lamp", Price: 30, Quantity: 10, Approved: true})

	newPrice := 35.0
	updated, err := svc.Update(context.Background(), seller, id, ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	assert.InDelta(t, 35.0, updated.Price, 0.001)
	assert.Equal(t, "lamp", updated.Name, "untouched fields survive a partial edit")
	assert.False(t, updated.Approved, "an edit goes back through moderation")
}

func TestUpdateListingRequiresOwnership(t *testing.T) {
	products := newFakeProductStore()
	svc := NewCatalogService(products)
	id := products.add(models.Product{Seller: primitive.NewObjectID(), Name: "lamp", Price: 30, Quantity: 10})

	name := "stolen"
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), id, ProductUpdate{Name: &name})
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestDeleteListingRequiresOwnership(t *testing.T) {
	products := newFakeProductStore()
	svc := NewCatalogService(products)
	id := products.add(models.Product{Seller: primitive.NewObjectID(), Name: "lamp", Price: 30, Quantity: 10})

	err := svc.Delete(context.Background(), primitive.NewObjectID(), id)
	require.ErrorIs(t, err, models.ErrForbidden)

	_, err = products.FindByID(context.Background(), id)
	require.NoError(t, err)
}

func TestGetHidesPendingListingFromStrangers(t *testing.T) {
	products := newFakeProductStore()
	svc := NewCatalogService(products)
	seller := primitive.NewObjectID()
	id := products.add(models.Product{Seller: seller, Name: "lamp", Price: 30, Quantity: 10, Approved: false})

	ctx := context.Background()

	_, err := svc.Get(ctx, id, primitive.NilObjectID, "")
	require.ErrorIs(t, err, models.ErrNotFound, "anonymous viewers never see pending listings")

	_, err = svc.Get(ctx, id, primitive.NewObjectID(), models.RoleBuyer)
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Get(ctx, id, seller, models.RoleSeller)
	require.NoError(t, err, "the owner sees their own pending listing")

	_, err = svc.Get(ctx, id, primitive.NewObjectID(), models.RoleAdmin)
	require.NoError(t, err, "admins see everything")
}

func TestListApprovedFiltersByCategory(t *testing.T) {
	products := newFakeProductStore()
	svc := NewCatalogService(products)
	products.add(models.Product{Name: "lamp", Price: 30, Quantity: 10, Category: "home", Approved: true})
	products.add(models.Product{Name: "rug", Price: 80, Quantity: 4, Category: "home", Approved: true})
	products.add(models.Product{Name: "kettle", Price: 20, Quantity: 7, Category: "kitchen", Approved: true})
	products.add(models.Product{Name: "pending lamp", Price: 30, Quantity: 1, Category: "home", Approved: false})

	all, err := svc.ListApproved(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	home, err := svc.ListApproved(context.Background(), "home")
	require.NoError(t, err)
	assert.Len(t, home, 2)
}
