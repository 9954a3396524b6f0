package model

import (
	"time"

	"github.com/farhanmaulana/clinic-orders/constant"
)

type StockItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// ReserveRequest creates an advisory hold. TTLMinutes nil means the default
// reservation window; an explicit 0 produces an already-expired hold.
type ReserveRequest struct {
	ProductID  uint64 `json:"product_id" validate:"required"`
	OrderID    uint64 `json:"order_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	TTLMinutes *int   `json:"ttl_minutes,omitempty" validate:"omitempty,gte=0"`
}

type Reservation struct {
	ID        uint64                     `db:"id" json:"id"`
	ProductID uint64                     `db:"product_id" json:"product_id"`
	OrderID   uint64                     `db:"order_id" json:"order_id"`
	Quantity  int                        `db:"quantity" json:"quantity"`
	Status    constant.ReservationStatus `db:"status" json:"status"`
	ExpiresAt time.Time                  `db:"expires_at" json:"expires_at"`
}

type ReserveResponse struct {
	ReservationID uint64    `json:"reservation_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// InsertMovementItem is an append-only ledger entry for a single stock change.
type InsertMovementItem struct {
	ProductID    uint64
	MovementType constant.MovementType
	Quantity     int
	Source       constant.MovementSource
	SourceID     uint64
}

type SweepResponse struct {
	ReleasedCount int64 `json:"released_count"`
}

// AdjustStockRequest corrects the on-hand level outside of the order flow
// (recounts, damaged goods, deliveries). Delta is signed.
type AdjustStockRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Delta     int    `json:"delta" validate:"required"`
	Reason    string `json:"reason"`
}

type AdjustStockResponse struct {
	ProductID uint64 `json:"product_id"`
	Delta     int    `json:"delta"`
}
