package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)

	// 同一商品は数量加算（(user_id, product_id) の一意性を守る）
	Upsert(ctx context.Context, userID int64, productID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error

	// 所有チェック付き削除（他人の明細なら ErrNotFound）
	DeleteByID(ctx context.Context, userID int64, cartItemID int64) error
	// カートを空にする
	DeleteByUserID(ctx context.Context, userID int64) error
}
