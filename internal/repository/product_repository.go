package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page     int
	PageSize int
	Search   string
	SellerID *int64
	Status   string
}

// 商品の永続化だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// 出品者本人の商品だけ更新できる
	Update(ctx context.Context, sellerID int64, p model.Product) error
	Delete(ctx context.Context, sellerID int64, id int64) error

	// 在庫が足りるときだけ1文の条件付きUPDATEで減算する。
	// 減算後に quantity=0 なら status を sold_out にする。
	// 行が更新されなければ false（競合か在庫不足）。
	DecrementStock(ctx context.Context, productID int64, qty int64) (bool, error)
}
