package model

import "time"

// カートの明細。
// (user_id, product_id) は一意。同じ商品の追加は数量加算になる。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_cart_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:uq_cart_user_product" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
