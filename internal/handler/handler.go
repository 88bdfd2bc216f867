package handler

import (
	"net/http"

	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// usecase.Error をそのままJSONにする。それ以外は500。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := usecase.AsError(err); ok {
		return c.JSON(e.Code, e)
	}
	return c.JSON(http.StatusInternalServerError, usecase.NewError(
		"InternalError", "internal error", http.StatusInternalServerError, "INTERNAL",
	))
}

// ミドルウェアが入れたuser_idを取り出す
func getUserID(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func unauthorized(c echo.Context) error {
	return writeError(c, usecase.ErrUnauthorized())
}
