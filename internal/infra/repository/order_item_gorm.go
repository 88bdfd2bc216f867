package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) ListBySellerID(ctx context.Context, sellerID int64, page int, pageSize int) ([]model.OrderItem, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Count(&total).Error; err != nil {
		return []model.OrderItem{}, 0, err
	}

	var items []model.OrderItem
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("id desc").
		Limit(pageSize).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, 0, err
	}

	return items, total, nil
}
