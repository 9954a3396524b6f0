package order_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	apporder "github.com/farhanmaulana/clinic-orders/application/order"
	"github.com/farhanmaulana/clinic-orders/cmd/config"
	"github.com/farhanmaulana/clinic-orders/constant"
	stockappmocks "github.com/farhanmaulana/clinic-orders/mocks/application/stock"
	ordermocks "github.com/farhanmaulana/clinic-orders/mocks/repository/order"
	productmocks "github.com/farhanmaulana/clinic-orders/mocks/repository/product"
	stockmocks "github.com/farhanmaulana/clinic-orders/mocks/repository/stock"
	txmocks "github.com/farhanmaulana/clinic-orders/mocks/repository/tx"
	"github.com/farhanmaulana/clinic-orders/model"
	productrepo "github.com/farhanmaulana/clinic-orders/repository/product"
	cerr "github.com/farhanmaulana/clinic-orders/utils/errors"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestOrderApp_CommitOrder(t *testing.T) {
	type fields struct {
		config      *config.Config
		txRepo      *txmocks.TxRepository
		orderRepo   *ordermocks.OrderRepository
		productRepo *productmocks.ProductRepository
		stockRepo   *stockmocks.StockRepository
		stockApp    *stockappmocks.StockApp
	}
	newFields := func(t *testing.T) fields {
		return fields{
			config:      &config.Config{},
			txRepo:      txmocks.NewTxRepository(t),
			orderRepo:   ordermocks.NewOrderRepository(t),
			productRepo: productmocks.NewProductRepository(t),
			stockRepo:   stockmocks.NewStockRepository(t),
			stockApp:    stockappmocks.NewStockApp(t),
		}
	}
	type args struct {
		ctx context.Context
		req *model.CommitOrderRequest
	}
	tests := []struct {
		name     string
		args     args
		mockCall func(f fields)
		want     *model.OrderSummary
		wantErr  bool
		errCode  constant.ErrorType
		check    func(t *testing.T, err error)
	}{
		{
			name: "success: single item decrements stock and records movement",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items: []model.OrderItemRequest{
						{ProductID: 1, Quantity: 4, UnitPrice: 25.5},
					},
				},
			},
			mockCall: func(f fields) {
				f.stockApp.On("ValidateAvailability", mock.Anything, []model.StockItemRequest{
					{ProductID: 1, Quantity: 4},
				}).Return(nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, Name: "Gauze Pads", Price: 25.5, Stock: 10,
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertOrderTxItem) bool {
					return req.ClinicID == 10 && req.RepresentativeID == 7 &&
						req.Status == constant.OrderStatusPending && req.TotalAmount == 102.0
				})).Return(uint64(55), nil).Once()

				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(55), mock.MatchedBy(func(items []model.InsertOrderItemTxItem) bool {
					return len(items) == 1 && items[0].ProductName == "Gauze Pads" && items[0].LineTotal == 102.0
				})).Return(nil).Once()

				f.productRepo.On("DecrementStock", mock.Anything, uint64(1), 4).Return(nil).Once()

				f.stockRepo.On("InsertMovement", mock.Anything, mock.MatchedBy(func(m *model.InsertMovementItem) bool {
					return m.ProductID == 1 && m.Quantity == 4 &&
						m.MovementType == constant.MovementTypeOut &&
						m.Source == constant.MovementSourceOrder && m.SourceID == 55
				})).Return(nil).Once()
			},
			want: &model.OrderSummary{
				OrderID:     55,
				TotalAmount: 102.0,
				Status:      constant.OrderStatusPending,
				ItemsCount:  1,
			},
		},
		{
			name: "error: empty items",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{ClinicID: 10, RepresentativeID: 7},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: non-positive quantity",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items:            []model.OrderItemRequest{{ProductID: 1, Quantity: 0}},
				},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: advisory validation fails before any write",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items:            []model.OrderItemRequest{{ProductID: 1, Quantity: 5}},
				},
			},
			mockCall: func(f fields) {
				f.stockApp.On("ValidateAvailability", mock.Anything, mock.Anything).
					Return(cerr.SetStockError(constant.ErrInsufficientStock, 1, 5, 3)).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
			check: func(t *testing.T, err error) {
				var se cerr.StockError
				if !errors.As(err, &se) {
					t.Fatalf("error type = %T, want StockError", err)
				}
				if se.ProductID != 1 || se.Requested != 5 || se.Available != 3 {
					t.Fatalf("unexpected stock error detail: %+v", se)
				}
			},
		},
		{
			name: "error: order header write fails, no compensation",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items:            []model.OrderItemRequest{{ProductID: 1, Quantity: 2, UnitPrice: 10}},
				},
			},
			mockCall: func(f fields) {
				f.stockApp.On("ValidateAvailability", mock.Anything, mock.Anything).Return(nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, Name: "Syringes", Price: 10, Stock: 50,
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).
					Return(uint64(0), errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderCreation,
		},
		{
			name: "error: second item decrement fails, order deleted, first decrement kept",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items: []model.OrderItemRequest{
						{ProductID: 1, Quantity: 2, UnitPrice: 5},
						{ProductID: 2, Quantity: 2, UnitPrice: 8},
					},
				},
			},
			mockCall: func(f fields) {
				f.stockApp.On("ValidateAvailability", mock.Anything, mock.Anything).Return(nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, Name: "Bandages", Price: 5, Stock: 20,
				}, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.ProductEntity{
					ID: 2, Name: "Thermometers", Price: 8, Stock: 0,
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(77), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(77), mock.Anything).Return(nil).Once()

				f.productRepo.On("DecrementStock", mock.Anything, uint64(1), 2).Return(nil).Once()
				f.stockRepo.On("InsertMovement", mock.Anything, mock.MatchedBy(func(m *model.InsertMovementItem) bool {
					return m.ProductID == 1
				})).Return(nil).Once()

				f.productRepo.On("DecrementStock", mock.Anything, uint64(2), 2).
					Return(fmt.Errorf("%w: product 2 has 0 in stock, requested 2", productrepo.ErrStockConflict)).Once()

				f.orderRepo.On("DeleteOrder", mock.Anything, uint64(77)).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrStockCommit,
			check: func(t *testing.T, err error) {
				var se cerr.StockError
				if !errors.As(err, &se) {
					t.Fatalf("error type = %T, want StockError", err)
				}
				if se.ProductID != 2 || se.Requested != 2 {
					t.Fatalf("unexpected stock error detail: %+v", se)
				}
			},
		},
		{
			name: "success: commit_stock false creates order without stock effect",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items:            []model.OrderItemRequest{{ProductID: 1, Quantity: 3, UnitPrice: 4}},
					CommitStock:      boolPtr(false),
				},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, Name: "Gloves", Price: 4, Stock: 100,
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(88), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(88), mock.Anything).Return(nil).Once()
			},
			want: &model.OrderSummary{
				OrderID:     88,
				TotalAmount: 12.0,
				Status:      constant.OrderStatusPending,
				ItemsCount:  1,
			},
		},
		{
			name: "success: movement append failure does not fail the commit",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items:            []model.OrderItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: 9.99}},
				},
			},
			mockCall: func(f fields) {
				f.stockApp.On("ValidateAvailability", mock.Anything, mock.Anything).Return(nil).Once()

				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, Name: "Masks", Price: 9.99, Stock: 5,
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(91), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(91), mock.Anything).Return(nil).Once()

				f.productRepo.On("DecrementStock", mock.Anything, uint64(1), 1).Return(nil).Once()
				f.stockRepo.On("InsertMovement", mock.Anything, mock.Anything).
					Return(errors.New("ledger unavailable")).Once()
			},
			want: &model.OrderSummary{
				OrderID:     91,
				TotalAmount: 9.99,
				Status:      constant.OrderStatusPending,
				ItemsCount:  1,
			},
		},
		{
			name: "success: explicit total override wins over computed total",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items:            []model.OrderItemRequest{{ProductID: 1, Quantity: 2, UnitPrice: 50}},
					TotalAmount:      floatPtr(90.0),
					CommitStock:      boolPtr(false),
				},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, Name: "Stethoscope", Price: 50, Stock: 3,
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertOrderTxItem) bool {
					return req.TotalAmount == 90.0
				})).Return(uint64(99), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(99), mock.Anything).Return(nil).Once()
			},
			want: &model.OrderSummary{
				OrderID:     99,
				TotalAmount: 90.0,
				Status:      constant.OrderStatusPending,
				ItemsCount:  1,
			},
		},
		{
			name: "error: unresolvable product",
			args: args{
				ctx: context.Background(),
				req: &model.CommitOrderRequest{
					ClinicID:         10,
					RepresentativeID: 7,
					Items:            []model.OrderItemRequest{{ProductID: 404, Quantity: 1}},
					CommitStock:      boolPtr(false),
				},
			},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(404)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := apporder.NewOrderApp(f.config, f.txRepo, f.orderRepo, f.productRepo, f.stockRepo, f.stockApp)

			got, err := app.CommitOrder(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CommitOrder() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				if tt.check != nil {
					tt.check(t, err)
				}
				return
			}

			if got.OrderID != tt.want.OrderID {
				t.Fatalf("CommitOrder() OrderID = %v, want %v", got.OrderID, tt.want.OrderID)
			}
			if got.TotalAmount != tt.want.TotalAmount {
				t.Fatalf("CommitOrder() TotalAmount = %v, want %v", got.TotalAmount, tt.want.TotalAmount)
			}
			if got.Status != constant.OrderStatusPending {
				t.Fatalf("CommitOrder() Status = %v, want pending", got.Status)
			}
			if got.ItemsCount != tt.want.ItemsCount {
				t.Fatalf("CommitOrder() ItemsCount = %v, want %v", got.ItemsCount, tt.want.ItemsCount)
			}
		})
	}
}

func TestOrderApp_GetOrder(t *testing.T) {
	t.Run("success: order with items", func(t *testing.T) {
		txRepo := txmocks.NewTxRepository(t)
		orderRepo := ordermocks.NewOrderRepository(t)
		productRepo := productmocks.NewProductRepository(t)
		stockRepo := stockmocks.NewStockRepository(t)
		stockApp := stockappmocks.NewStockApp(t)

		orderRepo.On("GetOrderDetail", mock.Anything, uint64(5)).Return(&model.OrderDetail{
			ID: 5, ClinicID: 1, RepresentativeID: 2, Status: constant.OrderStatusPending, TotalAmount: 20,
		}, nil).Once()
		orderRepo.On("GetOrderItems", mock.Anything, uint64(5)).Return([]model.OrderItemDetail{
			{ID: 1, OrderID: 5, ProductID: 3, ProductName: "Gauze Pads", UnitPrice: 10, Quantity: 2, LineTotal: 20},
		}, nil).Once()

		app := apporder.NewOrderApp(&config.Config{}, txRepo, orderRepo, productRepo, stockRepo, stockApp)
		got, err := app.GetOrder(context.Background(), 5)
		if err != nil {
			t.Fatalf("GetOrder() error = %v", err)
		}
		if got.Order.ID != 5 || len(got.Items) != 1 {
			t.Fatalf("GetOrder() = %+v", got)
		}
	})

	t.Run("error: order not found after compensating delete", func(t *testing.T) {
		txRepo := txmocks.NewTxRepository(t)
		orderRepo := ordermocks.NewOrderRepository(t)
		productRepo := productmocks.NewProductRepository(t)
		stockRepo := stockmocks.NewStockRepository(t)
		stockApp := stockappmocks.NewStockApp(t)

		orderRepo.On("GetOrderDetail", mock.Anything, uint64(77)).Return(nil, nil).Once()

		app := apporder.NewOrderApp(&config.Config{}, txRepo, orderRepo, productRepo, stockRepo, stockApp)
		_, err := app.GetOrder(context.Background(), 77)
		if err == nil {
			t.Fatal("GetOrder() expected error")
		}
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrNotFound] {
			t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrNotFound])
		}
	})
}
