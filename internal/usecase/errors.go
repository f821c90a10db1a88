package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindForbidden  ErrorKind = "forbidden"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindTransient  ErrorKind = "transient"
	KindInternal   ErrorKind = "internal"
)

// usecaseが返すエラー。errors.IsはCodeで比較する
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// HTTPステータスへの対応
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// メッセージだけ差し替えたコピーを返す（Codeは同じなのでerrors.Isは通る）
func (e *AppError) WithMessage(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

func newErr(kind ErrorKind, code, msg string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: msg}
}

var (
	// 400
	ErrInvalidInput      = newErr(KindValidation, "INVALID_INPUT", "invalid input")
	ErrInvalidQuantity   = newErr(KindValidation, "INVALID_QUANTITY", "quantity must be at least 1")
	ErrInvalidStatus     = newErr(KindValidation, "INVALID_STATUS", "invalid status")
	ErrInvalidCategory   = newErr(KindValidation, "INVALID_CATEGORY", "invalid category")
	ErrInvalidEmail      = newErr(KindValidation, "INVALID_EMAIL", "invalid email format")
	ErrPasswordTooShort  = newErr(KindValidation, "PASSWORD_TOO_SHORT", "password too short")
	ErrWeakPassword      = newErr(KindValidation, "WEAK_PASSWORD", "weak password")
	ErrInvalidPagination = newErr(KindValidation, "INVALID_INPUT", "invalid page or limit")

	// 401
	ErrMissingToken      = newErr(KindAuth, "MISSING_TOKEN", "no token provided, authorization denied")
	ErrMalformedToken    = newErr(KindAuth, "MALFORMED_TOKEN", "invalid token")
	ErrExpiredToken      = newErr(KindAuth, "EXPIRED_TOKEN", "token expired")
	ErrUserNotFound      = newErr(KindAuth, "USER_NOT_FOUND", "user not found")
	ErrInvalidCredential = newErr(KindAuth, "INVALID_CREDENTIAL", "invalid email or password")

	// 403
	ErrForbidden = newErr(KindForbidden, "FORBIDDEN", "admin only")

	// 404
	ErrItemNotFound    = newErr(KindNotFound, "ITEM_NOT_FOUND", "item not found")
	ErrLineNotFound    = newErr(KindNotFound, "LINE_NOT_FOUND", "item not in cart")
	ErrOrderNotFound   = newErr(KindNotFound, "ORDER_NOT_FOUND", "order not found")
	ErrAccountNotFound = newErr(KindNotFound, "ACCOUNT_NOT_FOUND", "user not found")

	// 409
	ErrInsufficientStock  = newErr(KindConflict, "INSUFFICIENT_STOCK", "not enough stock available")
	ErrTokenMismatch      = newErr(KindConflict, "TOKEN_MISMATCH", "token is invalid or user logged in from another device")
	ErrEmptyCart          = newErr(KindConflict, "EMPTY_CART", "cart is empty")
	ErrEmailAlreadyExists = newErr(KindConflict, "EMAIL_ALREADY_EXISTS", "email already exists")

	// 503
	ErrStoreUnavailable = newErr(KindTransient, "STORE_UNAVAILABLE", "db error")
	ErrCheckoutTimeout  = newErr(KindTransient, "CHECKOUT_TIMEOUT", "checkout timed out, try again")

	// 500
	ErrInternal = newErr(KindInternal, "INTERNAL", "internal error")
)

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// 商品名つきの在庫不足
func insufficientStock(itemName string) error {
	return ErrInsufficientStock.WithMessage(fmt.Sprintf("not enough stock for %s", itemName))
}

// ストアのエラーをTransientに包む
func storeErr(err error) error {
	return ErrStoreUnavailable.Wrap(err)
}
