package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	products repo.ProductRepository
	users    repo.UserRepository
}

func NewProductUsecase(products repo.ProductRepository, users repo.UserRepository) *ProductUsecase {
	return &ProductUsecase{products: products, users: users}
}

type ListProductsInput struct {
	Page     int
	PageSize int
	Search   string
	SellerID *int64
	Status   string
}

type ProductListOutput struct {
	Rows     []model.Product `json:"rows"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

type ProductDetailOutput struct {
	model.Product
	Seller *UserSummary `json:"seller,omitempty"`
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Quantity    int64
}

// 部分更新。nil のフィールドは変更しない。
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int64
	Status      *string
}

// 公開一覧。status 未指定は active のみ。
func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	page, pageSize, err := normalizePage(in.Page, in.PageSize)
	if err != nil {
		return ProductListOutput{}, err
	}

	status := in.Status
	if status == "" {
		status = string(model.ProductStatusActive)
	}

	rows, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   in.Search,
		SellerID: in.SellerID,
		Status:   status,
	})
	if err != nil {
		return ProductListOutput{}, ErrInternal()
	}

	return ProductListOutput{Rows: rows, Total: total, Page: page, PageSize: pageSize}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (ProductDetailOutput, error) {
	p, err := u.products.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return ProductDetailOutput{}, ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND")
	}
	if err != nil {
		return ProductDetailOutput{}, ErrInternal()
	}

	out := ProductDetailOutput{Product: p}
	if seller, err := u.users.FindByID(ctx, p.SellerID); err == nil {
		out.Seller = &UserSummary{ID: seller.ID, Email: seller.Email, Name: seller.Name}
	}
	return out, nil
}

func (u *ProductUsecase) Create(ctx context.Context, sellerID int64, in CreateProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, ErrUnauthorized()
	}
	if err := validateProductFields(in.Title, in.Description, in.Price, in.Quantity); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Create(ctx, model.Product{
		SellerID:    sellerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Status:      model.ProductStatusActive,
	})
	if err != nil {
		return model.Product{}, ErrInternal()
	}
	return p, nil
}

// 出品者による更新。status は渡された値をそのまま書き、quantity から
// sold_out を再計算しない（チェックアウトだけが整合させる）。
func (u *ProductUsecase) Update(ctx context.Context, sellerID int64, id int64, in UpdateProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, ErrUnauthorized()
	}

	p, err := u.products.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND")
	}
	if err != nil {
		return model.Product{}, ErrInternal()
	}
	// 他人の商品は「存在しない扱い」
	if p.SellerID != sellerID {
		return model.Product{}, ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND")
	}

	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Status != nil {
		s := model.ProductStatus(*in.Status)
		if s != model.ProductStatusActive && s != model.ProductStatusInactive && s != model.ProductStatusSoldOut {
			return model.Product{}, ErrValidation("invalid status")
		}
		p.Status = s
	}

	if err := validateProductFields(p.Title, p.Description, p.Price, p.Quantity); err != nil {
		return model.Product{}, err
	}

	if err := u.products.Update(ctx, sellerID, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND")
		}
		return model.Product{}, ErrInternal()
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, sellerID int64, id int64) error {
	if sellerID <= 0 {
		return ErrUnauthorized()
	}

	err := u.products.Delete(ctx, sellerID, id)
	if err == repo.ErrNotFound {
		return ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND")
	}
	if err != nil {
		return ErrInternal()
	}
	return nil
}

func validateProductFields(title string, description string, price decimal.Decimal, quantity int64) error {
	title = strings.TrimSpace(title)
	if len(title) < 3 || len(title) > 200 {
		return ErrValidation("title must be 3 to 200 characters")
	}
	if len(description) < 10 {
		return ErrValidation("description must be at least 10 characters")
	}
	if price.IsNegative() {
		return ErrValidation("price must not be negative")
	}
	if quantity < 0 {
		return ErrValidation("quantity must not be negative")
	}
	return nil
}
