package stock

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/farhanmaulana/clinic-orders/cmd/config"
	"github.com/farhanmaulana/clinic-orders/constant"
	"github.com/farhanmaulana/clinic-orders/model"
	productrepo "github.com/farhanmaulana/clinic-orders/repository/product"
	stockrepo "github.com/farhanmaulana/clinic-orders/repository/stock"
	"github.com/farhanmaulana/clinic-orders/thirdparty/rabbitmq"
	"github.com/farhanmaulana/clinic-orders/utils/errors"
	"github.com/farhanmaulana/clinic-orders/utils/logger"
)

type StockApp interface {
	ValidateAvailability(ctx context.Context, items []model.StockItemRequest) error
	Reserve(ctx context.Context, req *model.ReserveRequest) (*model.ReserveResponse, error)
	SweepExpired(ctx context.Context) (*model.SweepResponse, error)
	AdjustStock(ctx context.Context, req *model.AdjustStockRequest) (*model.AdjustStockResponse, error)
}

type stockAppImpl struct {
	config      *config.Config
	productRepo productrepo.ProductRepository
	stockRepo   stockrepo.StockRepository
	publisher   *rabbitmq.Publisher
}

func NewStockApp(config *config.Config, productRepo productrepo.ProductRepository, stockRepo stockrepo.StockRepository, publisher *rabbitmq.Publisher) StockApp {
	return &stockAppImpl{config: config, productRepo: productRepo, stockRepo: stockRepo, publisher: publisher}
}

// ValidateAvailability is the advisory pre-check: available = on-hand stock
// minus active unexpired holds. It is read-only and not atomic with any later
// decrement; the conditional UPDATE in the product repository is the
// authoritative check under concurrency.
func (s *stockAppImpl) ValidateAvailability(ctx context.Context, items []model.StockItemRequest) error {
	if len(items) == 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return errors.SetCustomError(constant.ErrInvalidRequest)
		}

		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("[ValidateAvailability] get product", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if product == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}

		reserved, err := s.stockRepo.GetActiveReservedQty(ctx, item.ProductID)
		if err != nil {
			logger.Error("[ValidateAvailability] get reserved qty", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		available := product.Stock - reserved
		if int64(item.Quantity) > available {
			logger.Info("[ValidateAvailability] insufficient stock",
				zap.Uint64("product_id", item.ProductID),
				zap.Int("need", item.Quantity),
				zap.Int64("available", available))
			return errors.SetStockError(constant.ErrInsufficientStock, item.ProductID, item.Quantity, available)
		}
	}

	return nil
}

// Reserve inserts a time-boxed advisory hold. No availability check happens
// here; the caller validated upstream and the hold is not a hard allocation.
func (s *stockAppImpl) Reserve(ctx context.Context, req *model.ReserveRequest) (*model.ReserveResponse, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	ttl := constant.DefaultReservationTTLMinutes * time.Minute
	if s.config.Order.ReservationTTL > 0 {
		ttl = s.config.Order.ReservationTTL
	}
	if req.TTLMinutes != nil {
		ttl = time.Duration(*req.TTLMinutes) * time.Minute
	}
	expiresAt := time.Now().Add(ttl)

	reservationID, err := s.stockRepo.InsertReservation(ctx, req, expiresAt)
	if err != nil {
		logger.Error("[Reserve] insert reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Delayed message so a consumer triggers the sweep once the hold lapses.
	// Capacity returns to the pool either way; the message only makes it
	// prompt.
	if s.publisher != nil {
		msg := rabbitmq.ReservationExpiryMessage{
			ReservationID: reservationID,
			ProductID:     req.ProductID,
			OrderID:       req.OrderID,
			ExpiresAt:     expiresAt,
		}
		if err := s.publisher.PublishReservationExpiry(msg); err != nil {
			logger.Error("[Reserve] publish reservation expiry", zap.String("error", err.Error()))
		}
	}

	return &model.ReserveResponse{
		ReservationID: reservationID,
		ExpiresAt:     expiresAt,
	}, nil
}

// AdjustStock applies a signed correction to the on-hand level. Negative
// deltas go through the same guarded decrement as order commits, so an
// adjustment can never take stock below zero.
func (s *stockAppImpl) AdjustStock(ctx context.Context, req *model.AdjustStockRequest) (*model.AdjustStockResponse, error) {
	if req.Delta == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	movementType := constant.MovementTypeIn
	qty := req.Delta

	if req.Delta > 0 {
		if err := s.productRepo.IncrementStock(ctx, req.ProductID, req.Delta); err != nil {
			logger.Error("[AdjustStock] increment stock", zap.Uint64("product_id", req.ProductID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	} else {
		movementType = constant.MovementTypeOut
		qty = -req.Delta
		if err := s.productRepo.DecrementStock(ctx, req.ProductID, qty); err != nil {
			logger.Error("[AdjustStock] decrement stock", zap.Uint64("product_id", req.ProductID), zap.String("error", err.Error()))
			if stderrors.Is(err, productrepo.ErrStockConflict) {
				return nil, errors.SetStockCommitError(req.ProductID, qty, err.Error())
			}
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	movement := &model.InsertMovementItem{
		ProductID:    req.ProductID,
		MovementType: movementType,
		Quantity:     qty,
		Source:       constant.MovementSourceAdjustment,
	}
	if err := s.stockRepo.InsertMovement(ctx, movement); err != nil {
		logger.Warn("[AdjustStock] insert movement", zap.Uint64("product_id", req.ProductID), zap.String("error", err.Error()))
	}

	return &model.AdjustStockResponse{ProductID: req.ProductID, Delta: req.Delta}, nil
}

// SweepExpired transitions every lapsed active hold to expired in one
// statement. Safe to run concurrently from multiple workers; a second
// immediate call affects zero rows.
func (s *stockAppImpl) SweepExpired(ctx context.Context) (*model.SweepResponse, error) {
	count, err := s.stockRepo.SweepExpired(ctx)
	if err != nil {
		logger.Error("[SweepExpired] sweep", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if count > 0 {
		logger.Info("[SweepExpired] released expired reservations", zap.Int64("count", count))
	}

	return &model.SweepResponse{ReleasedCount: count}, nil
}
