package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeLamp() model.Product {
	return model.Product{
		ID: 100, SellerID: 7, Title: "Old Lamp", Quantity: 5,
		Price:  decimal.RequireFromString("10.00"),
		Status: model.ProductStatusActive,
	}
}

func TestCart_AddToCart_DefaultQuantityIsOne(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(100)).Return(activeLamp(), nil)
	cRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)
	cRepo.On("Upsert", mock.Anything, int64(1), int64(100), int64(1)).Return(nil)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 100})
	assert.NoError(t, err)
	cRepo.AssertCalled(t, "Upsert", mock.Anything, int64(1), int64(100), int64(1))
}

func TestCart_AddToCart_InactiveProduct(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	p := activeLamp()
	p.Status = model.ProductStatusInactive
	pRepo.On("FindByID", mock.Anything, int64(100)).Return(p, nil)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 100, Quantity: 1})
	assertErrType(t, err, "PRODUCT_NOT_AVAILABLE", http.StatusBadRequest)
	cRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCart_AddToCart_ExistingPlusNewExceedsStock(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(100)).Return(activeLamp(), nil) // 在庫5
	cRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 10, UserID: 1, ProductID: 100, Quantity: 4},
	}, nil)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 100, Quantity: 2})
	assertErrType(t, err, "INSUFFICIENT_QUANTITY", http.StatusBadRequest)
}

func TestCart_AddToCart_ProductNotFound(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 999, Quantity: 1})
	assertErrType(t, err, "PRODUCT_NOT_FOUND", http.StatusNotFound)
}

func TestCart_UpdateItem_OtherUsersItemLooksMissing(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	cRepo.On("FindByID", mock.Anything, int64(10)).Return(model.CartItem{
		ID: 10, UserID: 99, ProductID: 100, Quantity: 1,
	}, nil)

	_, err := uc.UpdateItem(context.Background(), 1, 10, 2)
	assertErrType(t, err, "CART_ITEM_NOT_FOUND", http.StatusNotFound)
	cRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCart_UpdateItem_QuantityAboveStock(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	cRepo.On("FindByID", mock.Anything, int64(10)).Return(model.CartItem{
		ID: 10, UserID: 1, ProductID: 100, Quantity: 1,
	}, nil)
	pRepo.On("FindByID", mock.Anything, int64(100)).Return(activeLamp(), nil) // 在庫5

	_, err := uc.UpdateItem(context.Background(), 1, 10, 6)
	assertErrType(t, err, "INSUFFICIENT_QUANTITY", http.StatusBadRequest)
}

func TestCart_GetCart_TotalUsesCurrentPrices(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	cRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 10, UserID: 1, ProductID: 100, Quantity: 2},
		{ID: 11, UserID: 1, ProductID: 200, Quantity: 3},
	}, nil)
	pRepo.On("FindByID", mock.Anything, int64(100)).Return(activeLamp(), nil)
	pRepo.On("FindByID", mock.Anything, int64(200)).Return(model.Product{
		ID: 200, SellerID: 8, Title: "Tea Set", Quantity: 3,
		Price:  decimal.RequireFromString("5.50"),
		Status: model.ProductStatusActive,
	}, nil)

	out, err := uc.GetCart(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("36.50")), "total = %s", out.Total)
}

func TestCart_RemoveItem_NotFound(t *testing.T) {
	cRepo := new(CartItemRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cRepo, pRepo)

	cRepo.On("DeleteByID", mock.Anything, int64(1), int64(10)).Return(repo.ErrNotFound)

	_, err := uc.RemoveItem(context.Background(), 1, 10)
	assertErrType(t, err, "CART_ITEM_NOT_FOUND", http.StatusNotFound)
}
