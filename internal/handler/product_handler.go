package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 一覧と詳細は公開、作成・更新・削除はbearer必須。
func (h *ProductHandler) RegisterRoutes(g *echo.Group, authMW echo.MiddlewareFunc) {
	g.GET("/products", h.list)
	g.GET("/products/:id", h.detail)

	g.POST("/products", h.create, authMW)
	g.PATCH("/products/:id", h.update, authMW)
	g.DELETE("/products/:id", h.remove, authMW)
}

type ProductCreateRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

type ProductUpdateRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"quantity"`
	Status      *string          `json:"status"`
}

func (h *ProductHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, usecase.ErrValidation("invalid page"))
		}
		page = p
	}

	pageSize := 20
	if v := c.QueryParam("pageSize"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, usecase.ErrValidation("invalid pageSize"))
		}
		pageSize = s
	}

	var sellerID *int64
	if v := c.QueryParam("seller_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return writeError(c, usecase.ErrValidation("invalid seller_id"))
		}
		sellerID = &id
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Page:     page,
		PageSize: pageSize,
		Search:   c.QueryParam("search"),
		SellerID: sellerID,
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, usecase.ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND"))
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	sellerID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.ErrValidation("invalid body"))
	}

	out, err := h.uc.Create(c.Request().Context(), sellerID, usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	sellerID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, usecase.ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND"))
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.ErrValidation("invalid body"))
	}

	out, err := h.uc.Update(c.Request().Context(), sellerID, id, usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Status:      req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) remove(c echo.Context) error {
	sellerID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, usecase.ErrNotFoundWith("Product not found", "PRODUCT_NOT_FOUND"))
	}

	if err := h.uc.Delete(c.Request().Context(), sellerID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
