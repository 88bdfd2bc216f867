package usecase

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// 表示用の商品サマリ
type ProductSummary struct {
	ID     int64               `json:"id"`
	Title  string              `json:"title"`
	Price  decimal.Decimal     `json:"price"`
	Status model.ProductStatus `json:"status"`
}

// 表示用のユーザーサマリ
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type OrderItemOutput struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	SellerID  int64           `json:"seller_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *ProductSummary `json:"product,omitempty"`
	Seller    *UserSummary    `json:"seller,omitempty"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	BuyerID         int64             `json:"buyer_id"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          model.OrderStatus `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Rows     []OrderOutput `json:"rows"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// 出品者側から見た1明細
type SellerOrderLine struct {
	OrderItemOutput
	Order OrderSummary `json:"order"`
}

type OrderSummary struct {
	ID        int64             `json:"id"`
	Status    model.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Buyer     *UserSummary      `json:"buyer,omitempty"`
}

type SellerOrderListOutput struct {
	Rows     []SellerOrderLine `json:"rows"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// 注文の読み取り系。書き込みは CheckoutUsecase だけが行う。
type OrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	users      repo.UserRepository
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	products repo.ProductRepository,
	users repo.UserRepository,
) *OrderUsecase {
	return &OrderUsecase{orders: orders, orderItems: orderItems, products: products, users: users}
}

// 自分の注文一覧
func (u *OrderUsecase) ListMyOrders(ctx context.Context, buyerID int64, page int, pageSize int) (OrderListOutput, error) {
	if buyerID <= 0 {
		return OrderListOutput{}, ErrUnauthorized()
	}
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return OrderListOutput{}, err
	}

	orders, total, err := u.orders.ListByBuyerID(ctx, buyerID, page, pageSize)
	if err != nil {
		return OrderListOutput{}, ErrInternal()
	}

	rows := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItems.ListByOrderID(ctx, o.ID)
		if err != nil {
			return OrderListOutput{}, ErrInternal()
		}
		rows = append(rows, u.toOrderOutput(ctx, o, items, false))
	}

	return OrderListOutput{Rows: rows, Total: total, Page: page, PageSize: pageSize}, nil
}

// 注文詳細。他人の注文は「存在しない扱い」にする。
func (u *OrderUsecase) GetMyOrder(ctx context.Context, buyerID int64, orderID int64) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, ErrUnauthorized()
	}
	if orderID <= 0 {
		return OrderOutput{}, ErrNotFoundWith("Order not found", "ORDER_NOT_FOUND")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, ErrNotFoundWith("Order not found", "ORDER_NOT_FOUND")
	}
	if err != nil {
		return OrderOutput{}, ErrInternal()
	}
	if o.BuyerID != buyerID {
		return OrderOutput{}, ErrNotFoundWith("Order not found", "ORDER_NOT_FOUND")
	}

	items, err := u.orderItems.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, ErrInternal()
	}

	return u.toOrderOutput(ctx, o, items, true), nil
}

// 出品者側の注文一覧（明細単位）
func (u *OrderUsecase) ListSellerOrders(ctx context.Context, sellerID int64, page int, pageSize int) (SellerOrderListOutput, error) {
	if sellerID <= 0 {
		return SellerOrderListOutput{}, ErrUnauthorized()
	}
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return SellerOrderListOutput{}, err
	}

	items, total, err := u.orderItems.ListBySellerID(ctx, sellerID, page, pageSize)
	if err != nil {
		return SellerOrderListOutput{}, ErrInternal()
	}

	rows := make([]SellerOrderLine, 0, len(items))
	for _, it := range items {
		line := SellerOrderLine{OrderItemOutput: toItemOutput(it)}
		line.Product = u.productSummary(ctx, it.ProductID)

		if o, err := u.orders.FindByID(ctx, it.OrderID); err == nil {
			sum := OrderSummary{ID: o.ID, Status: o.Status, CreatedAt: o.CreatedAt}
			if buyer, err := u.users.FindByID(ctx, o.BuyerID); err == nil {
				sum.Buyer = &UserSummary{ID: buyer.ID, Email: buyer.Email, Name: buyer.Name}
			}
			line.Order = sum
		}
		rows = append(rows, line)
	}

	return SellerOrderListOutput{Rows: rows, Total: total, Page: page, PageSize: pageSize}, nil
}

// 注文＋明細を出力形式へ。withSeller のときは出品者サマリも付ける。
func (u *OrderUsecase) toOrderOutput(ctx context.Context, o model.Order, items []model.OrderItem, withSeller bool) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		oi := toItemOutput(it)
		oi.Product = u.productSummary(ctx, it.ProductID)
		if withSeller {
			if seller, err := u.users.FindByID(ctx, it.SellerID); err == nil {
				oi.Seller = &UserSummary{ID: seller.ID, Email: seller.Email, Name: seller.Name}
			}
		}
		outItems = append(outItems, oi)
	}

	return OrderOutput{
		ID:              o.ID,
		BuyerID:         o.BuyerID,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}

func (u *OrderUsecase) productSummary(ctx context.Context, productID int64) *ProductSummary {
	p, err := u.products.FindByID(ctx, productID)
	if err != nil {
		// 商品が後から消えていても注文履歴は表示できる
		return nil
	}
	return &ProductSummary{ID: p.ID, Title: p.Title, Price: p.Price, Status: p.Status}
}

func toItemOutput(it model.OrderItem) OrderItemOutput {
	return OrderItemOutput{
		ID:        it.ID,
		ProductID: it.ProductID,
		SellerID:  it.SellerID,
		Quantity:  it.Quantity,
		Price:     it.Price,
	}
}

func normalizePage(page int, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if page < 1 {
		return 0, 0, ErrValidation("invalid page")
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrValidation("invalid pageSize")
	}
	return page, pageSize, nil
}
