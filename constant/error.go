package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidPassword
	ErrInvalidOrderStatus
	ErrInsufficientStock
	ErrStockCommit
	ErrOrderCreation
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrInvalidPassword:    "password invalid",
	ErrInvalidOrderStatus: "invalid order status",
	ErrInsufficientStock:  "insufficient stock",
	ErrStockCommit:        "stock commit failed",
	ErrOrderCreation:      "order creation failed",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusBadRequest,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrInvalidPassword:    http.StatusBadRequest,
	ErrInvalidOrderStatus: http.StatusBadRequest,
	ErrInsufficientStock:  http.StatusConflict,
	ErrStockCommit:        http.StatusConflict,
	ErrOrderCreation:      http.StatusInternalServerError,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrInvalidPassword:    "0005",
	ErrInvalidOrderStatus: "0006",
	ErrInsufficientStock:  "0007",
	ErrStockCommit:        "0008",
	ErrOrderCreation:      "0009",
}
