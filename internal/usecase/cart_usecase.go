package usecase

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。
// 横断的な不変条件は持たない。チェックアウトは CheckoutUsecase が担う。
type CartUsecase struct {
	cartItems repo.CartItemRepository
	products  repo.ProductRepository
}

func NewCartUsecase(cartItems repo.CartItemRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartItems: cartItems, products: products}
}

// カート1行＋現在の商品スナップショット
type CartLineOutput struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Product   *ProductSummary `json:"product,omitempty"`
}

type CartOutput struct {
	Items []CartLineOutput `json:"items"`
	Total decimal.Decimal  `json:"total"`
	Count int              `json:"count"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart はカートを現在価格で合計して返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, ErrUnauthorized()
	}

	lines, err := u.cartItems.ListByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, ErrInternal()
	}

	return u.buildCartOutput(ctx, lines)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, ErrUnauthorized()
	}
	if in.ProductID <= 0 {
		return CartOutput{}, ErrValidation("invalid product_id")
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return CartOutput{}, ErrValidation("invalid quantity")
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartOutput{}, ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND")
	}
	if err != nil {
		return CartOutput{}, ErrInternal()
	}
	if p.Status != model.ProductStatusActive {
		return CartOutput{}, ErrProductUnavailable(p.Title)
	}

	// 既存数量＋追加分で在庫を超えないか
	lines, err := u.cartItems.ListByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, ErrInternal()
	}
	var existing int64
	for _, line := range lines {
		if line.ProductID == in.ProductID {
			existing = line.Quantity
			break
		}
	}
	if p.Quantity < existing+qty {
		return CartOutput{}, ErrInsufficientQuantity(p.Title)
	}

	if err := u.cartItems.Upsert(ctx, userID, in.ProductID, qty); err != nil {
		return CartOutput{}, ErrInternal()
	}

	return u.GetCart(ctx, userID)
}

// 数量変更（所有チェック＋在庫チェック）。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, cartItemID int64, qty int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, ErrUnauthorized()
	}
	if cartItemID <= 0 {
		return CartOutput{}, ErrNotFoundWith("Cart item not found", "CART_ITEM_NOT_FOUND")
	}
	if qty < 1 {
		return CartOutput{}, ErrValidation("invalid quantity")
	}

	item, err := u.cartItems.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartOutput{}, ErrNotFoundWith("Cart item not found", "CART_ITEM_NOT_FOUND")
	}
	if err != nil {
		return CartOutput{}, ErrInternal()
	}
	// 他人の明細は「存在しない扱い」
	if item.UserID != userID {
		return CartOutput{}, ErrNotFoundWith("Cart item not found", "CART_ITEM_NOT_FOUND")
	}

	p, err := u.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return CartOutput{}, ErrInternal()
	}
	if p.Quantity < qty {
		return CartOutput{}, ErrInsufficientQuantity(p.Title)
	}

	if err := u.cartItems.UpdateQuantity(ctx, cartItemID, qty); err != nil {
		return CartOutput{}, ErrInternal()
	}

	return u.GetCart(ctx, userID)
}

// 明細を1行削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, ErrUnauthorized()
	}

	err := u.cartItems.DeleteByID(ctx, userID, cartItemID)
	if err == repo.ErrNotFound {
		return CartOutput{}, ErrNotFoundWith("Cart item not found", "CART_ITEM_NOT_FOUND")
	}
	if err != nil {
		return CartOutput{}, ErrInternal()
	}

	return u.GetCart(ctx, userID)
}

// カートを空にする
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrUnauthorized()
	}
	if err := u.cartItems.DeleteByUserID(ctx, userID); err != nil {
		return ErrInternal()
	}
	return nil
}

func (u *CartUsecase) buildCartOutput(ctx context.Context, lines []model.CartItem) (CartOutput, error) {
	items := make([]CartLineOutput, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		out := CartLineOutput{ID: line.ID, ProductID: line.ProductID, Quantity: line.Quantity}
		if p, err := u.products.FindByID(ctx, line.ProductID); err == nil {
			out.Product = &ProductSummary{ID: p.ID, Title: p.Title, Price: p.Price, Status: p.Status}
			total = total.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}
		items = append(items, out)
	}

	return CartOutput{Items: items, Total: total.Round(2), Count: len(items)}, nil
}
