package order

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/farhanmaulana/clinic-orders/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.InsertOrderItemTxItem) error
	DeleteOrder(ctx context.Context, orderID uint64) error
	GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error)
	GetOrderItems(ctx context.Context, orderID uint64) ([]model.OrderItemDetail, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	insertOrderQuery = "INSERT INTO `order` (clinic_id, representative_id, status, total_amount, notes, ordered_at) VALUES (?, ?, ?, ?, ?, ?)"

	insertOrderItemQuery = "INSERT INTO order_item (order_id, product_id, product_name, unit_price, quantity, line_total) VALUES (?, ?, ?, ?, ?, ?)"

	getOrderQuery = "SELECT id, clinic_id, representative_id, status, total_amount, notes, ordered_at FROM `order` WHERE id = ? AND deleted_at IS NULL"

	getOrderItemsQuery = "SELECT id, order_id, product_id, product_name, unit_price, quantity, line_total FROM order_item WHERE order_id = ? ORDER BY id"
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrderQuery, req.ClinicID, req.RepresentativeID, req.Status, req.TotalAmount, req.Notes, req.OrderedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.InsertOrderItemTxItem) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertOrderItemQuery, orderID, it.ProductID, it.ProductName, it.UnitPrice, it.Quantity, it.LineTotal); err != nil {
			return err
		}
	}
	return nil
}

// DeleteOrder is the compensating action for a failed stock commit: the order
// and its line items are removed outright, not soft-deleted, since the order
// was never observable as successful.
func (r *SQL) DeleteOrder(ctx context.Context, orderID uint64) error {
	if _, err := r.conn.ExecContext(ctx, "DELETE FROM order_item WHERE order_id = ?", orderID); err != nil {
		return err
	}
	_, err := r.conn.ExecContext(ctx, "DELETE FROM `order` WHERE id = ?", orderID)
	return err
}

func (r *SQL) GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := r.conn.QueryRowxContext(ctx, getOrderQuery, orderID).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetOrderItems(ctx context.Context, orderID uint64) ([]model.OrderItemDetail, error) {
	rows, err := r.conn.QueryxContext(ctx, getOrderItemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItemDetail, 0)
	for rows.Next() {
		var it model.OrderItemDetail
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
