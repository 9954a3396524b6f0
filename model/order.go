package model

import (
	"time"

	"github.com/farhanmaulana/clinic-orders/constant"
)

type OrderItemRequest struct {
	ProductID uint64  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// CommitOrderRequest is the body of POST /orders. TotalAmount, when supplied,
// overrides the computed total (discounted orders). CommitStock defaults to
// true; when nil the stock is decremented as part of order creation.
// RepresentativeID falls back to the authenticated user when omitted.
type CommitOrderRequest struct {
	ClinicID         uint64             `json:"clinic_id" validate:"required"`
	RepresentativeID uint64             `json:"representative_id"`
	Items            []OrderItemRequest `json:"items" validate:"required,dive,required"`
	Notes            string             `json:"notes"`
	TotalAmount      *float64           `json:"total_amount,omitempty"`
	CommitStock      *bool              `json:"commit_stock,omitempty"`
}

type OrderSummary struct {
	OrderID     uint64               `json:"order_id"`
	TotalAmount float64              `json:"total_amount"`
	Status      constant.OrderStatus `json:"status"`
	ItemsCount  int                  `json:"items_count"`
}

type InsertOrderTxItem struct {
	ClinicID         uint64
	RepresentativeID uint64
	Status           constant.OrderStatus
	TotalAmount      float64
	Notes            string
	OrderedAt        time.Time
}

// InsertOrderItemTxItem carries the product snapshot denormalized at creation
// time so historical orders are immune to later price changes.
type InsertOrderItemTxItem struct {
	ProductID   uint64
	ProductName string
	UnitPrice   float64
	Quantity    int
	LineTotal   float64
}

type OrderDetail struct {
	ID               uint64               `db:"id" json:"id"`
	ClinicID         uint64               `db:"clinic_id" json:"clinic_id"`
	RepresentativeID uint64               `db:"representative_id" json:"representative_id"`
	Status           constant.OrderStatus `db:"status" json:"status"`
	TotalAmount      float64              `db:"total_amount" json:"total_amount"`
	Notes            string               `db:"notes" json:"notes,omitempty"`
	OrderedAt        time.Time            `db:"ordered_at" json:"ordered_at"`
}

type OrderItemDetail struct {
	ID          uint64  `db:"id" json:"id"`
	OrderID     uint64  `db:"order_id" json:"order_id"`
	ProductID   uint64  `db:"product_id" json:"product_id"`
	ProductName string  `db:"product_name" json:"product_name"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
	Quantity    int     `db:"quantity" json:"quantity"`
	LineTotal   float64 `db:"line_total" json:"line_total"`
}

type OrderResponse struct {
	Order *OrderDetail      `json:"order"`
	Items []OrderItemDetail `json:"items"`
}
