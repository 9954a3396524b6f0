package product_test

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/mock"

	appproduct "github.com/farhanmaulana/clinic-orders/application/product"
	"github.com/farhanmaulana/clinic-orders/constant"
	productmocks "github.com/farhanmaulana/clinic-orders/mocks/repository/product"
	"github.com/farhanmaulana/clinic-orders/model"
	cerr "github.com/farhanmaulana/clinic-orders/utils/errors"
)

func TestProductApp_ListProducts(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	type args struct {
		ctx     context.Context
		page    int
		perPage int
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.ProductListResponse
		wantErr  bool
	}{
		{
			name: "success: list products with availability",
			fields: fields{
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				page:    1,
				perPage: 10,
			},
			mockCall: func(f fields) {
				items := []model.ProductListItem{
					{ID: 1, Name: "Gauze Pads", Price: 25.5, Stock: 10, AvailableStock: 6},
					{ID: 2, Name: "Syringes", Price: 10, Stock: 50, AvailableStock: 50},
				}
				f.productRepo.
					On("List", mock.Anything, 1, 10).
					Return(items, int64(2), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items: []model.ProductListItem{
					{ID: 1, Name: "Gauze Pads", Price: 25.5, Stock: 10, AvailableStock: 6},
					{ID: 2, Name: "Syringes", Price: 10, Stock: 50, AvailableStock: 50},
				},
				TotalCount: 2,
				Page:       1,
				PerPage:    10,
			},
		},
		{
			name: "success: default page and perPage when zero or negative",
			fields: fields{
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				page:    0,
				perPage: -5,
			},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, 1, 10).
					Return([]model.ProductListItem{}, int64(0), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items:      []model.ProductListItem{},
				TotalCount: 0,
				Page:       1,
				PerPage:    10,
			},
		},
		{
			name: "error: repo failure",
			fields: fields{
				productRepo: productmocks.NewProductRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				page:    1,
				perPage: 10,
			},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, 1, 10).
					Return(nil, int64(0), errors.New("db error")).
					Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appproduct.NewProductApp(tt.fields.productRepo)

			got, err := app.ListProducts(tt.args.ctx, tt.args.page, tt.args.perPage)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListProducts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ListProducts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_GetProduct(t *testing.T) {
	t.Run("success: existing product", func(t *testing.T) {
		productRepo := productmocks.NewProductRepository(t)
		productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
			ID: 1, Name: "Gauze Pads", Price: 25.5, Stock: 10,
		}, nil).Once()

		app := appproduct.NewProductApp(productRepo)
		got, err := app.GetProduct(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetProduct() error = %v", err)
		}
		if got.ID != 1 {
			t.Fatalf("GetProduct() ID = %v, want 1", got.ID)
		}
	})

	t.Run("error: soft-deleted product is not found", func(t *testing.T) {
		productRepo := productmocks.NewProductRepository(t)
		productRepo.On("GetByID", mock.Anything, uint64(2)).Return(nil, nil).Once()

		app := appproduct.NewProductApp(productRepo)
		_, err := app.GetProduct(context.Background(), 2)
		if err == nil {
			t.Fatal("GetProduct() expected error")
		}
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrNotFound] {
			t.Fatalf("error code = %s, want not found", ce.ErrorCode())
		}
	})
}

func TestProductApp_DeleteProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		productRepo := productmocks.NewProductRepository(t)
		productRepo.On("SoftDelete", mock.Anything, uint64(1), uint64(9)).Return(nil).Once()

		app := appproduct.NewProductApp(productRepo)
		if err := app.DeleteProduct(context.Background(), 1, 9); err != nil {
			t.Fatalf("DeleteProduct() error = %v", err)
		}
	})

	t.Run("error: already deleted", func(t *testing.T) {
		productRepo := productmocks.NewProductRepository(t)
		productRepo.On("SoftDelete", mock.Anything, uint64(1), uint64(9)).Return(sql.ErrNoRows).Once()

		app := appproduct.NewProductApp(productRepo)
		err := app.DeleteProduct(context.Background(), 1, 9)
		if err == nil {
			t.Fatal("DeleteProduct() expected error")
		}
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrNotFound] {
			t.Fatalf("error code = %s, want not found", ce.ErrorCode())
		}
	})
}
