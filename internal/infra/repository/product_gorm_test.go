package repository

import (
	"context"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLamp(t *testing.T, r *ProductGormRepository, qty int64) model.Product {
	t.Helper()
	p, err := r.Create(context.Background(), model.Product{
		SellerID:    7,
		Title:       "Old Lamp",
		Description: "a well-used lamp",
		Price:       decimal.RequireFromString("10.00"),
		Quantity:    qty,
		Status:      model.ProductStatusActive,
	})
	require.NoError(t, err)
	return p
}

func TestProductGorm_DecrementStock_Partial(t *testing.T) {
	r := NewProductGormRepository(newTestDB(t))
	ctx := context.Background()
	p := seedLamp(t, r, 5)

	ok, err := r.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
	assert.Equal(t, model.ProductStatusActive, got.Status)
}

func TestProductGorm_DecrementStock_ToZeroFlipsSoldOut(t *testing.T) {
	r := NewProductGormRepository(newTestDB(t))
	ctx := context.Background()
	p := seedLamp(t, r, 2)

	ok, err := r.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity)
	assert.Equal(t, model.ProductStatusSoldOut, got.Status)
}

func TestProductGorm_DecrementStock_InsufficientIsNoop(t *testing.T) {
	r := NewProductGormRepository(newTestDB(t))
	ctx := context.Background()
	p := seedLamp(t, r, 1)

	ok, err := r.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	// 在庫もstatusも変わらない
	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Quantity)
	assert.Equal(t, model.ProductStatusActive, got.Status)
}

func TestProductGorm_DecrementStock_MissingProduct(t *testing.T) {
	r := NewProductGormRepository(newTestDB(t))

	ok, err := r.DecrementStock(context.Background(), 999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductGorm_Update_ScopedToSeller(t *testing.T) {
	r := NewProductGormRepository(newTestDB(t))
	ctx := context.Background()
	p := seedLamp(t, r, 5)

	p.Title = "Renamed Lamp"
	err := r.Update(ctx, 99, p) // 他の出品者
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, r.Update(ctx, 7, p))
	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Lamp", got.Title)
}

func TestProductGorm_List_FiltersByStatusAndSearch(t *testing.T) {
	r := NewProductGormRepository(newTestDB(t))
	ctx := context.Background()

	seedLamp(t, r, 5)
	_, err := r.Create(ctx, model.Product{
		SellerID: 8, Title: "Tea Set", Description: "six cups and a pot",
		Price: decimal.RequireFromString("5.50"), Quantity: 3, Status: model.ProductStatusInactive,
	})
	require.NoError(t, err)

	rows, total, err := r.List(ctx, repo.ProductListQuery{
		Page: 1, PageSize: 20, Status: string(model.ProductStatusActive),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Old Lamp", rows[0].Title)

	rows, total, err = r.List(ctx, repo.ProductListQuery{
		Page: 1, PageSize: 20, Search: "Tea",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tea Set", rows[0].Title)
}

func TestProductGorm_FindByID_NotFound(t *testing.T) {
	r := NewProductGormRepository(newTestDB(t))

	_, err := r.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
