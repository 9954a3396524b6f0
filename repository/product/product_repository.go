package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/farhanmaulana/clinic-orders/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error)
	DecrementStock(ctx context.Context, productID uint64, quantity int) error
	IncrementStock(ctx context.Context, productID uint64, quantity int) error
	SoftDelete(ctx context.Context, productID, deletedBy uint64) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

// ErrStockConflict is returned by DecrementStock when the conditional update
// matches no row: either the product is gone or stock < quantity.
var ErrStockConflict = fmt.Errorf("stock conflict")

const (
	listProductsBase = `SELECT p.id, p.name, p.price, p.stock,
p.stock - COALESCE((SELECT SUM(r.quantity) FROM product_reservation r WHERE r.product_id = p.id AND r.status = 'active' AND r.expires_at > NOW()), 0) AS available_stock
FROM product p
WHERE p.deleted_at IS NULL`

	countProductsQuery = `SELECT COUNT(*) FROM product WHERE deleted_at IS NULL`

	getProductQuery = `SELECT id, name, price, stock, min_stock, max_stock, average_daily_use, deleted_at, deleted_by
FROM product WHERE id = ? AND deleted_at IS NULL`

	// The WHERE stock >= ? condition makes check-then-decrement a single
	// atomic statement; concurrent orders race here and only here.
	decrementStockQuery = `UPDATE product SET stock = stock - ? WHERE id = ? AND deleted_at IS NULL AND stock >= ?`

	incrementStockQuery = `UPDATE product SET stock = stock + ? WHERE id = ? AND deleted_at IS NULL`

	softDeleteQuery = `UPDATE product SET deleted_at = NOW(), deleted_by = ? WHERE id = ? AND deleted_at IS NULL`
)

func (s *SQL) List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error) {
	offset := (page - 1) * perPage

	query := listProductsBase + " ORDER BY p.id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.ProductListItem, 0)
	for rows.Next() {
		var it model.ProductListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductsQuery); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, getProductQuery, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// DecrementStock is the authoritative availability check. On conflict the row
// is untouched and ErrStockConflict is returned with the current stock level.
func (s *SQL) DecrementStock(ctx context.Context, productID uint64, quantity int) error {
	res, err := s.conn.ExecContext(ctx, decrementStockQuery, quantity, productID, quantity)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var stock sql.NullInt64
		// best-effort read for the failure message only
		_ = s.conn.GetContext(ctx, &stock, "SELECT stock FROM product WHERE id = ? AND deleted_at IS NULL", productID)
		return fmt.Errorf("%w: product %d has %d in stock, requested %d", ErrStockConflict, productID, stock.Int64, quantity)
	}
	return nil
}

func (s *SQL) IncrementStock(ctx context.Context, productID uint64, quantity int) error {
	res, err := s.conn.ExecContext(ctx, incrementStockQuery, quantity, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQL) SoftDelete(ctx context.Context, productID, deletedBy uint64) error {
	res, err := s.conn.ExecContext(ctx, softDeleteQuery, deletedBy, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
