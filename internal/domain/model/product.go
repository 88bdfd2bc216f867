package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusSoldOut  ProductStatus = "sold_out"
)

// 出品者（seller_id）が所有する商品。
// quantity=0 ⇔ sold_out はチェックアウトだけが保証する。
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    int64           `gorm:"not null;index" json:"seller_id"`
	Title       string          `gorm:"type:varchar(200);not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
