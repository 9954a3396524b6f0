package order

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appstock "github.com/farhanmaulana/clinic-orders/application/stock"
	"github.com/farhanmaulana/clinic-orders/cmd/config"
	"github.com/farhanmaulana/clinic-orders/constant"
	"github.com/farhanmaulana/clinic-orders/model"
	orderrepo "github.com/farhanmaulana/clinic-orders/repository/order"
	productrepo "github.com/farhanmaulana/clinic-orders/repository/product"
	stockrepo "github.com/farhanmaulana/clinic-orders/repository/stock"
	txrepo "github.com/farhanmaulana/clinic-orders/repository/tx"
	"github.com/farhanmaulana/clinic-orders/utils/errors"
	"github.com/farhanmaulana/clinic-orders/utils/logger"
)

type OrderApp interface {
	CommitOrder(ctx context.Context, req *model.CommitOrderRequest) (*model.OrderSummary, error)
	GetOrder(ctx context.Context, orderID uint64) (*model.OrderResponse, error)
}

type orderAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	stockRepo   stockrepo.StockRepository
	stockApp    appstock.StockApp
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, stockRepo stockrepo.StockRepository, stockApp appstock.StockApp) OrderApp {
	return &orderAppImpl{
		config:      config,
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		stockApp:    stockApp,
	}
}

// CommitOrder turns a cart into a persisted order and decrements stock per
// item. There is no transaction spanning the order write and the decrements:
// each decrement is independently atomic, and on any decrement failure the
// just-created order is deleted (compensating action) before the error is
// surfaced. Stock already taken by earlier items of the same order is not
// restored; those quantities stay decremented with no owning order.
func (s *orderAppImpl) CommitOrder(ctx context.Context, req *model.CommitOrderRequest) (*model.OrderSummary, error) {
	if len(req.Items) == 0 || req.ClinicID == 0 || req.RepresentativeID == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest)
		}
	}

	commitStock := true
	if req.CommitStock != nil {
		commitStock = *req.CommitStock
	}

	// advisory availability check, before any write
	if commitStock {
		stockItems := make([]model.StockItemRequest, 0, len(req.Items))
		for _, item := range req.Items {
			stockItems = append(stockItems, model.StockItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		if err := s.stockApp.ValidateAvailability(ctx, stockItems); err != nil {
			return nil, err
		}
	}

	summary, err := s.createOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if !commitStock {
		return summary, nil
	}

	// per-item atomic decrement; the order of iteration only matters for
	// diagnostics since each decrement stands alone
	for _, item := range req.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error("[CommitOrder] decrement stock",
				zap.Uint64("order_id", summary.OrderID),
				zap.Uint64("product_id", item.ProductID),
				zap.String("error", err.Error()))

			if delErr := s.orderRepo.DeleteOrder(ctx, summary.OrderID); delErr != nil {
				logger.Error("[CommitOrder] compensating delete", zap.Uint64("order_id", summary.OrderID), zap.String("error", delErr.Error()))
			}

			if stderrors.Is(err, productrepo.ErrStockConflict) {
				return nil, errors.SetStockCommitError(item.ProductID, item.Quantity, err.Error())
			}
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		// best-effort audit trail, never fails the commit
		movement := &model.InsertMovementItem{
			ProductID:    item.ProductID,
			MovementType: constant.MovementTypeOut,
			Quantity:     item.Quantity,
			Source:       constant.MovementSourceOrder,
			SourceID:     summary.OrderID,
		}
		if err := s.stockRepo.InsertMovement(ctx, movement); err != nil {
			logger.Warn("[CommitOrder] insert movement",
				zap.Uint64("order_id", summary.OrderID),
				zap.Uint64("product_id", item.ProductID),
				zap.String("error", err.Error()))
		}
	}

	return summary, nil
}

// createOrder persists the order header and its line items as one unit of
// work, snapshotting product name and price so later catalog changes do not
// rewrite history.
func (s *orderAppImpl) createOrder(ctx context.Context, req *model.CommitOrderRequest) (*model.OrderSummary, error) {
	txItems := make([]model.InsertOrderItemTxItem, 0, len(req.Items))
	computedTotal := decimal.Zero

	for _, item := range req.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("[createOrder] get product", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrOrderCreation)
		}
		if product == nil {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}

		unitPrice := item.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.Price
		}
		lineTotal := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		computedTotal = computedTotal.Add(lineTotal)

		txItems = append(txItems, model.InsertOrderItemTxItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			UnitPrice:   unitPrice,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal.InexactFloat64(),
		})
	}

	totalAmount := computedTotal.Round(2).InexactFloat64()
	if req.TotalAmount != nil {
		// explicit caller total wins, to support discounted orders
		totalAmount = *req.TotalAmount
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[createOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrOrderCreation)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		ClinicID:         req.ClinicID,
		RepresentativeID: req.RepresentativeID,
		Status:           constant.OrderStatusPending,
		TotalAmount:      totalAmount,
		Notes:            req.Notes,
		OrderedAt:        time.Now(),
	})
	if err != nil {
		logger.Error("[createOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrOrderCreation)
	}

	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, txItems); err != nil {
		logger.Error("[createOrder] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrOrderCreation)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[createOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrOrderCreation)
	}
	committed = true

	return &model.OrderSummary{
		OrderID:     orderID,
		TotalAmount: totalAmount,
		Status:      constant.OrderStatusPending,
		ItemsCount:  len(req.Items),
	}, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID uint64) (*model.OrderResponse, error) {
	detail, err := s.orderRepo.GetOrderDetail(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order detail", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if detail == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.OrderResponse{
		Order: detail,
		Items: items,
	}, nil
}
