package model

import "time"

// ProductEntity represents the product table entity.
type ProductEntity struct {
	ID              uint64     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Price           float64    `db:"price" json:"price"`
	Stock           int64      `db:"stock" json:"stock"`
	MinStock        *int64     `db:"min_stock" json:"min_stock,omitempty"`
	MaxStock        *int64     `db:"max_stock" json:"max_stock,omitempty"`
	AverageDailyUse *float64   `db:"average_daily_use" json:"average_daily_use,omitempty"`
	DeletedAt       *time.Time `db:"deleted_at" json:"-"`
	DeletedBy       *uint64    `db:"deleted_by" json:"-"`
}

type ProductListItem struct {
	ID             uint64  `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Price          float64 `db:"price" json:"price"`
	Stock          int64   `db:"stock" json:"stock"`
	AvailableStock int64   `db:"available_stock" json:"available_stock"`
}

type ProductListResponse struct {
	Items      []ProductListItem `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}
