package repository

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品一覧（検索/出品者/状態の絞り込み＋ページング）
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.SellerID != nil {
		tx = tx.Where("seller_id = ?", *q.SellerID)
	}
	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("title LIKE ?", like)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	offset := (q.Page - 1) * q.PageSize
	if err := tx.Order("created_at desc").Order("id desc").
		Offset(offset).Limit(q.PageSize).
		Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新（出品者本人のみ）。
// status は渡された値をそのまま書く。quantity から再計算はしない。
func (r *ProductGormRepository) Update(ctx context.Context, sellerID int64, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND seller_id = ?", p.ID, sellerID).
		Updates(map[string]interface{}{
			"title":       p.Title,
			"description": p.Description,
			"price":       p.Price,
			"quantity":    p.Quantity,
			"status":      p.Status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（出品者本人のみ）
func (r *ProductGormRepository) Delete(ctx context.Context, sellerID int64, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす。減算後に0なら sold_out に切り替える。
// 1文の条件付きUPDATEなので、先に読んだ値が古くても負の在庫にはならない。
func (r *ProductGormRepository) DecrementStock(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", qty),
			"status":   gorm.Expr("CASE WHEN quantity - ? = 0 THEN ? ELSE status END", qty, string(model.ProductStatusSoldOut)),
		})

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
