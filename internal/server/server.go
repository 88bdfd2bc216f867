package server

import (
	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
}

// New はルーティング済みのechoを組み立てる。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Logger())

	if cfg.FrontendURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FrontendURL},
		}))
	}

	e.GET("/health", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")
	authMW := middleware.AuthJWT([]byte(cfg.JWTSecret))

	h.Auth.RegisterRoutes(api)
	h.Product.RegisterRoutes(api, authMW)
	h.Cart.RegisterRoutes(api, authMW)
	h.Order.RegisterRoutes(api, authMW)

	return e
}
