package usecase

import (
	"context"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

const minShippingAddressLen = 10

// CheckoutUsecase はカートを注文に変換する唯一の書き込み経路。
// 検証・注文作成・在庫減算・カート削除を1トランザクションで行う。
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

type CheckoutInput struct {
	ShippingAddress string
}

// Checkout はカート全量を1注文として確定する。
// 失敗したら注文行・在庫・カートのどれも変化しない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, buyerID int64, in CheckoutInput) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, ErrUnauthorized()
	}

	address := strings.TrimSpace(in.ShippingAddress)
	if len(address) < minShippingAddressLen {
		return OrderOutput{}, ErrValidation("shipping_address must be at least 10 characters")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.CartItems().ListByUserID(ctx, buyerID)
		if err != nil {
			return ErrInternal()
		}
		if len(lines) == 0 {
			return ErrEmptyCart()
		}

		// 現在の商品状態で全行を検証し、価格をスナップショットする。
		// 最初の失敗で打ち切り、ここまで書き込みは一切ない。
		items := make([]model.OrderItem, 0, len(lines))
		titles := make(map[int64]string, len(lines))
		snapshots := make(map[int64]model.Product, len(lines))
		total := decimal.Zero

		for _, line := range lines {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND")
			}
			if err != nil {
				return ErrInternal()
			}

			if p.Status != model.ProductStatusActive {
				return ErrProductUnavailable(p.Title)
			}
			if p.Quantity < line.Quantity {
				return ErrInsufficientQuantity(p.Title)
			}

			total = total.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
			items = append(items, model.OrderItem{
				ProductID: p.ID,
				SellerID:  p.SellerID,
				Quantity:  line.Quantity,
				Price:     p.Price,
			})
			titles[p.ID] = p.Title
			snapshots[p.ID] = p
		}

		// 丸めは行ごとではなく、合計に対して最後に1回だけ
		total = total.Round(2)

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			BuyerID:         buyerID,
			TotalAmount:     total,
			Status:          model.OrderStatusPending,
			ShippingAddress: address,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return ErrInternal()
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return ErrInternal()
		}

		// 条件付き減算。検証との間に他のチェックアウトが在庫を取っていたら
		// ここで空振りして全体がロールバックされる。
		for _, it := range items {
			ok, err := r.Products().DecrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return ErrInternal()
			}
			if !ok {
				return ErrStockConflict(titles[it.ProductID])
			}
		}

		if err := r.CartItems().DeleteByUserID(ctx, buyerID); err != nil {
			return ErrInternal()
		}

		outItems := make([]OrderItemOutput, 0, len(items))
		for _, it := range items {
			oi := toItemOutput(it)
			p := snapshots[it.ProductID]
			oi.Product = &ProductSummary{ID: p.ID, Title: p.Title, Price: p.Price, Status: p.Status}
			outItems = append(outItems, oi)
		}

		out = OrderOutput{
			ID:              orderID,
			BuyerID:         buyerID,
			TotalAmount:     total,
			Status:          model.OrderStatusPending,
			ShippingAddress: address,
			CreatedAt:       now,
			Items:           outItems,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
