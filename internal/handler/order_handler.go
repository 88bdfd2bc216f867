package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
}

// DI
func NewOrderHandler(checkout *usecase.CheckoutUsecase, orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	orders := g.Group("/orders", authMW)

	orders.POST("", h.create)
	orders.GET("", h.list)
	// /:id より前に登録しないと "seller" がIDとして解釈される
	orders.GET("/seller", h.sellerOrders)
	orders.GET("/:id", h.detail)
}

type OrderCreateRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// チェックアウト本体。成功なら201で注文＋明細を返す。
func (h *OrderHandler) create(c echo.Context) error {
	buyerID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.ErrValidation("invalid body"))
	}

	out, err := h.checkout.Checkout(c.Request().Context(), buyerID, usecase.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	buyerID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	page, pageSize, err := pagingParams(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.orders.ListMyOrders(c.Request().Context(), buyerID, page, pageSize)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	buyerID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, usecase.ErrNotFoundWith("Order not found", "ORDER_NOT_FOUND"))
	}

	out, err := h.orders.GetMyOrder(c.Request().Context(), buyerID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) sellerOrders(c echo.Context) error {
	sellerID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	page, pageSize, err := pagingParams(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.orders.ListSellerOrders(c.Request().Context(), sellerID, page, pageSize)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func pagingParams(c echo.Context) (int, int, error) {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, usecase.ErrValidation("invalid page")
		}
		page = p
	}

	pageSize := 20
	if v := c.QueryParam("pageSize"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, usecase.ErrValidation("invalid pageSize")
		}
		pageSize = s
	}

	return page, pageSize, nil
}
