package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	// 出品者側の注文一覧（seller_id は明細に非正規化済みなので join 不要）
	ListBySellerID(ctx context.Context, sellerID int64, page int, pageSize int) ([]model.OrderItem, int64, error)
}
