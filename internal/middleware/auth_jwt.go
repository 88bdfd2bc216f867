package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey    = "user_id"    // int64
	CtxUserEmailKey = "user_email" // string
	CtxUserNameKey  = "user_name"  // string
)

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func unauthorizedJSON() errorResponse {
	return errorResponse{
		Name:    "UnauthorizedError",
		Message: "Unauthorized",
		Code:    http.StatusUnauthorized,
		Type:    "UNAUTHORIZED",
	}
}

// bearerAuth用のJWT検証ミドルウェア。
// claims の {id, email, name} をcontextへ入れる。下の層はcontextを読まず、
// handlerが明示的にidを渡す。
func AuthJWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			// Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			// JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			userID, err := parseID(claims["id"])
			if err != nil || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			email, _ := claims["email"].(string)
			name, _ := claims["name"].(string)

			// contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserEmailKey, email)
			c.Set(CtxUserNameKey, name)

			return next(c)
		}
	}
}

// idをint64に変換する
func parseID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid id claim")
	}
}
