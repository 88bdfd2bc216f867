package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByBuyerID(ctx context.Context, buyerID int64, page int, pageSize int) ([]model.Order, int64, error)
}
