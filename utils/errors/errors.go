package errors

import (
	"fmt"

	"github.com/farhanmaulana/clinic-orders/constant"
)

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// StockError is a CustomError that carries the offending product and the
// requested-vs-available quantities, so callers can present an actionable
// message instead of a generic insufficiency.
type StockError struct {
	base      CustomError
	ProductID uint64
	Requested int
	Available int64
	Reason    string
}

func (s StockError) Error() string {
	if s.Reason != "" {
		return fmt.Sprintf("%s: product %d: %s", s.base.Error(), s.ProductID, s.Reason)
	}
	return fmt.Sprintf("%s: product %d requested %d available %d", s.base.Error(), s.ProductID, s.Requested, s.Available)
}

func (s StockError) Unwrap() error {
	return s.base
}

func (s StockError) Details() map[string]interface{} {
	details := map[string]interface{}{
		"product_id": s.ProductID,
		"requested":  s.Requested,
	}
	if s.Reason != "" {
		details["reason"] = s.Reason
	} else {
		details["available"] = s.Available
	}
	return details
}

func SetStockError(errorType constant.ErrorType, productID uint64, requested int, available int64) StockError {
	return StockError{
		base:      SetCustomError(errorType),
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func SetStockCommitError(productID uint64, requested int, reason string) StockError {
	return StockError{
		base:      SetCustomError(constant.ErrStockCommit),
		ProductID: productID,
		Requested: requested,
		Reason:    reason,
	}
}
