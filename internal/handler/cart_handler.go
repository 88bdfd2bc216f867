package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	cart := g.Group("/cart", authMW)

	cart.GET("", h.get)
	cart.POST("", h.add)
	cart.PATCH("/:id", h.update)
	cart.DELETE("/:id", h.remove)
	cart.DELETE("", h.clear)
}

type CartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CartUpdateRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) get(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) add(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CartAddRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.ErrValidation("invalid body"))
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) update(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, usecase.ErrNotFoundWith("Cart item not found", "CART_ITEM_NOT_FOUND"))
	}

	var req CartUpdateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.ErrValidation("invalid body"))
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), userID, id, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) remove(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, usecase.ErrNotFoundWith("Cart item not found", "CART_ITEM_NOT_FOUND"))
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uc.Clear(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
