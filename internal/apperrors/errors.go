package apperrors

import (
	"fmt"
	"net/http"
)

// Error is an application error carrying the HTTP status it maps to at the
// boundary.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a wrapped copy against its sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == e.Message
}

func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Wrap attaches a cause to a sentinel without mutating the sentinel itself.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// Validation returns a 400 error with the given detail, raised before any
// state mutation.
func Validation(detail string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: detail}
}

var (
	ErrValidation           = New(http.StatusBadRequest, "Validation error", nil)
	ErrDuplicateItem        = New(http.StatusConflict, "Item already exists", nil)
	ErrNoValidItems         = New(http.StatusBadRequest, "No valid items in batch", nil)
	ErrItemNotFound         = New(http.StatusNotFound, "Item not found", nil)
	ErrItemHasPendingOrders = New(http.StatusConflict, "Item is referenced by pending orders", nil)
	ErrOrderNotFound        = New(http.StatusNotFound, "Order not found", nil)
	ErrInvalidTransition    = New(http.StatusConflict, "Invalid order transition", nil)
	ErrCategoryInUse        = New(http.StatusConflict, "Category is still referenced by items", nil)
	ErrCostEntryNotFound    = New(http.StatusNotFound, "Cost entry not found", nil)
	ErrUnknownAction        = New(http.StatusBadRequest, "Unknown action", nil)

	// ErrInventoryInvariant marks a reservation accounting bug. It aborts the
	// operation; callers must not clamp or recover.
	ErrInventoryInvariant = New(http.StatusInternalServerError, "Inventory invariant violation", nil)

	// ErrCredentialRejected carries the exact message the front end keys on to
	// force re-authentication.
	ErrCredentialRejected = New(http.StatusUnauthorized, "Invalid API Key", nil)

	// ErrUnavailable wraps transient store failures; callers may retry, the
	// service itself never does.
	ErrUnavailable = New(http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
)

// InsufficientStockError reports the first order line that failed the
// availability check. Nothing has been reserved when it is returned.
type InsufficientStockError struct {
	Item      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.Item, e.Requested, e.Available)
}

// HTTPStatus maps any error to the status code reported at the boundary.
func HTTPStatus(err error) int {
	switch e := err.(type) {
	case *Error:
		return e.Code
	case *InsufficientStockError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
