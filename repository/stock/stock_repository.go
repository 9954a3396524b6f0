package stock

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/farhanmaulana/clinic-orders/model"
)

type SQL struct {
	conn *sqlx.DB
}

type StockRepository interface {
	GetActiveReservedQty(ctx context.Context, productID uint64) (int64, error)
	InsertReservation(ctx context.Context, req *model.ReserveRequest, expiresAt time.Time) (uint64, error)
	SweepExpired(ctx context.Context) (int64, error)
	InsertMovement(ctx context.Context, req *model.InsertMovementItem) error
}

func NewStockRepository(conn *sqlx.DB) StockRepository {
	return &SQL{conn: conn}
}

const (
	activeReservedQtyQuery = `SELECT COALESCE(SUM(quantity), 0) FROM product_reservation WHERE product_id = ? AND status = 'active' AND expires_at > NOW()`

	insertReservationQuery = `INSERT INTO product_reservation (product_id, order_id, quantity, status, expires_at) VALUES (?, ?, ?, 'active', ?)`

	// Single statement so concurrent sweepers cannot double-expire a hold;
	// each row transitions active -> expired exactly once.
	sweepExpiredQuery = `UPDATE product_reservation SET status = 'expired' WHERE status = 'active' AND expires_at <= NOW()`

	insertMovementQuery = `INSERT INTO product_movement (product_id, movement_type, quantity, source, source_id, created_at) VALUES (?, ?, ?, ?, ?, NOW())`
)

func (r *SQL) GetActiveReservedQty(ctx context.Context, productID uint64) (int64, error) {
	var total sql.NullInt64
	if err := r.conn.GetContext(ctx, &total, activeReservedQtyQuery, productID); err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Int64, nil
}

func (r *SQL) InsertReservation(ctx context.Context, req *model.ReserveRequest, expiresAt time.Time) (uint64, error) {
	res, err := r.conn.ExecContext(ctx, insertReservationQuery, req.ProductID, req.OrderID, req.Quantity, expiresAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) SweepExpired(ctx context.Context) (int64, error) {
	res, err := r.conn.ExecContext(ctx, sweepExpiredQuery)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQL) InsertMovement(ctx context.Context, req *model.InsertMovementItem) error {
	_, err := r.conn.ExecContext(ctx, insertMovementQuery, req.ProductID, req.MovementType, req.Quantity, req.Source, req.SourceID)
	return err
}
