package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func uintPtr(v uint) *uint { return &v }

func boolPtr(v bool) *bool { return &v }

func TestListOrdersNewestFirst(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{Repo: repo.NewGormRepo(db)}
	cart := &CartService{Repo: repo.NewGormRepo(db)}

	cola := seedProduct(t, db, "Cola", "19.99")
	chips := seedProduct(t, db, "Chips", "2.50")

	alice := uuid.New()
	first, err := cart.Add(context.Background(), alice, cola.ID, 1)
	require.NoError(t, err)
	_, err = cart.Checkout(context.Background(), alice)
	require.NoError(t, err)

	bob := uuid.New()
	second, err := cart.Add(context.Background(), bob, chips.ID, 2)
	require.NoError(t, err)

	total, orders, err := svc.ListOrders(context.Background(), 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)
	require.Equal(t, "Chips", orders[0].Product.Name)
	require.True(t, orders[1].Completed)
}

func TestListOrdersPagination(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{Repo: repo.NewGormRepo(db)}
	product := seedProduct(t, db, "Cola", "19.99")

	for i := 0; i < 3; i++ {
		order := models.Order{SessionID: uuid.New(), ProductID: product.ID, Quantity: 1}
		require.NoError(t, db.Create(&order).Error)
	}

	total, page, err := svc.ListOrders(context.Background(), 0, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page, 2)

	total, page, err = svc.ListOrders(context.Background(), 2, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page, 1)
}

func TestPatchOrderQuantityShowsInCart(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{Repo: repo.NewGormRepo(db)}
	cart := &CartService{Repo: repo.NewGormRepo(db)}
	product := seedProduct(t, db, "Cola", "19.99")

	sessionID := uuid.New()
	line, err := cart.Add(context.Background(), sessionID, product.ID, 1)
	require.NoError(t, err)

	patched, err := svc.PatchOrder(context.Background(), transport.PatchOrderRequest{Quantity: uintPtr(5)}, line.ID)
	require.NoError(t, err)
	require.EqualValues(t, 5, patched.Quantity)
	require.Equal(t, "Cola", patched.Product.Name)

	view, err := cart.ViewCart(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.EqualValues(t, 5, view.Items[0].Quantity)
	require.Equal(t, "99.95", view.Total.StringFixed(2))
}

func TestPatchOrderCompletedRemovesFromCart(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{Repo: repo.NewGormRepo(db)}
	cart := &CartService{Repo: repo.NewGormRepo(db)}
	product := seedProduct(t, db, "Cola", "19.99")

	sessionID := uuid.New()
	line, err := cart.Add(context.Background(), sessionID, product.ID, 1)
	require.NoError(t, err)

	patched, err := svc.PatchOrder(context.Background(), transport.PatchOrderRequest{Completed: boolPtr(true)}, line.ID)
	require.NoError(t, err)
	require.True(t, patched.Completed)

	view, err := cart.ViewCart(context.Background(), sessionID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestPatchOrderErrors(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{Repo: repo.NewGormRepo(db)}
	cart := &CartService{Repo: repo.NewGormRepo(db)}
	product := seedProduct(t, db, "Cola", "19.99")

	line, err := cart.Add(context.Background(), uuid.New(), product.ID, 1)
	require.NoError(t, err)

	_, err = svc.PatchOrder(context.Background(), transport.PatchOrderRequest{Quantity: uintPtr(0)}, line.ID)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchOrder(context.Background(), transport.PatchOrderRequest{Quantity: uintPtr(2)}, line.ID+100)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrder(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{Repo: repo.NewGormRepo(db)}
	cart := &CartService{Repo: repo.NewGormRepo(db)}
	product := seedProduct(t, db, "Cola", "19.99")

	line, err := cart.Add(context.Background(), uuid.New(), product.ID, 3)
	require.NoError(t, err)

	order, err := svc.GetOrder(context.Background(), line.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, order.Quantity)
	require.Equal(t, "Cola", order.Product.Name)
	require.Equal(t, "59.97", order.TotalPrice().StringFixed(2))

	_, err = svc.GetOrder(context.Background(), line.ID+100)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOrderEmptiesCartLine(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{Repo: repo.NewGormRepo(db)}
	cart := &CartService{Repo: repo.NewGormRepo(db)}
	product := seedProduct(t, db, "Cola", "19.99")

	sessionID := uuid.New()
	line, err := cart.Add(context.Background(), sessionID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), line.ID))

	view, err := cart.ViewCart(context.Background(), sessionID)
	require.NoError(t, err)
	require.Empty(t, view.Items)

	require.ErrorIs(t, svc.DeleteOrder(context.Background(), line.ID), ErrNotFound)
}
