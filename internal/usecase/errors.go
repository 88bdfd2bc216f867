package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// APIが返すエラー。code がそのままHTTPステータスになる。
type Error struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Code, e.Type)
}

func NewError(name string, message string, code int, typ string) *Error {
	return &Error{Name: name, Message: message, Code: code, Type: typ}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func ErrUnauthorized() error {
	return NewError("UnauthorizedError", "Unauthorized", http.StatusUnauthorized, "UNAUTHORIZED")
}

func ErrValidation(message string) error {
	return NewError("ValidationError", message, http.StatusUnprocessableEntity, "VALIDATION_ERROR")
}

func ErrEmptyCart() error {
	return NewError("EmptyCartError", "Cart is empty", http.StatusBadRequest, "EMPTY_CART")
}

func ErrProductUnavailable(title string) error {
	msg := fmt.Sprintf("Product %q is no longer available", title)
	return NewError("ProductUnavailableError", msg, http.StatusBadRequest, "PRODUCT_NOT_AVAILABLE")
}

func ErrInsufficientQuantity(title string) error {
	msg := fmt.Sprintf("Insufficient quantity for product %q", title)
	return NewError("InsufficientQuantityError", msg, http.StatusBadRequest, "INSUFFICIENT_QUANTITY")
}

// 検証は通ったのに条件付き減算が空振りした＝並行チェックアウトに負けた
func ErrStockConflict(title string) error {
	msg := fmt.Sprintf("Stock for product %q changed, refresh your cart and retry", title)
	return NewError("ConflictError", msg, http.StatusConflict, "CONFLICT")
}

func ErrNotFoundWith(message string, typ string) error {
	return NewError("NotFoundError", message, http.StatusNotFound, typ)
}

func ErrEmailExists() error {
	return NewError("ConflictError", "Email already registered", http.StatusConflict, "EMAIL_EXISTS")
}

func ErrInvalidCredentials() error {
	return NewError("UnauthorizedError", "Invalid credentials", http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func ErrInternal() error {
	return NewError("InternalError", "db error", http.StatusInternalServerError, "INTERNAL")
}
