package repository

import (
	"context"

	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products   repo.ProductRepository
	cartItems  repo.CartItemRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }

// NewTxRepos はそのDBハンドルに束縛されたリポジトリ一式を作る。
func NewTxRepos(db *gorm.DB) repo.TxRepos {
	return &txReposGorm{
		products:   NewProductGormRepository(db),
		cartItems:  NewCartItemGormRepository(db),
		orders:     NewOrderGormRepository(db),
		orderItems: NewOrderItemGormRepository(db),
	}
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fn が error ならロールバック、nil ならコミット。
// 呼び出し元が途中で切断されても、中途半端な状態では終わらない。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repoはtxを持ったDBで作り直す
		return fn(NewTxRepos(tx))
	})
}
