package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	orderapp "github.com/farhanmaulana/clinic-orders/application/order"
	productapp "github.com/farhanmaulana/clinic-orders/application/product"
	stockapp "github.com/farhanmaulana/clinic-orders/application/stock"
	userapp "github.com/farhanmaulana/clinic-orders/application/user"
	"github.com/farhanmaulana/clinic-orders/constant"
	"github.com/farhanmaulana/clinic-orders/model"
	ctxutil "github.com/farhanmaulana/clinic-orders/utils/context"
	"github.com/farhanmaulana/clinic-orders/utils/errors"
	validatorx "github.com/farhanmaulana/clinic-orders/utils/validator"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ProductApp productapp.ProductApp
	OrderApp   orderapp.OrderApp
	StockApp   stockapp.StockApp
}

func NewTransport(UserApp userapp.UserApp, ProductApp productapp.ProductApp, OrderApp orderapp.OrderApp, StockApp stockapp.StockApp, internalAPIKey string) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    UserApp,
		ProductApp: ProductApp,
		OrderApp:   OrderApp,
		StockApp:   StockApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// Protected routes
	mux.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.DeleteProduct).Methods(http.MethodDelete)
	mux.HandleFunc("/orders", rh.CommitOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/reservations", rh.Reserve).Methods(http.MethodPost)

	// Internal routes (static API key, called by the expiry consumer and ops tooling)
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/reservations/sweep", rh.SweepReservations).Methods(http.MethodPost)
	internal.HandleFunc("/stock/adjustments", rh.AdjustStock).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(UserApp))

	return mux
}

// Login handler
// @Summary Representative login
// @Description Login with email and password and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListProducts handler
// @Summary List products
// @Description List products with on-hand and available (minus active holds) stock
// @Tags Product
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} model.ProductListResponse
// @Security BearerAuth
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	res, err := s.ProductApp.ListProducts(ctx, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product detail
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductEntity
// @Security BearerAuth
// @Router /products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.GetProduct(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteProduct handler
// @Summary Soft-delete a product
// @Description Marks the product deleted; it stops appearing in listings and rejects new orders
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} nil
// @Failure 404 {object} errors.CustomError
// @Security BearerAuth
// @Router /products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	userID, ok := ctxutil.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.ProductApp.DeleteProduct(ctx, id, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// CommitOrder handler
// @Summary Create an order and commit stock
// @Description Creates a pending order and atomically decrements stock per item; on any item failure the order is deleted and a conflict is returned
// @Tags Order
// @Accept json
// @Produce json
// @Param request body model.CommitOrderRequest true "Commit Order Request"
// @Success 201 {object} model.OrderSummary
// @Failure 400 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /orders [post]
func (s *RestHandler) CommitOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CommitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if req.RepresentativeID == 0 {
		if userID, ok := ctxutil.GetUserID(ctx); ok {
			req.RepresentativeID = userID
		}
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.CommitOrder(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// GetOrder handler
// @Summary Get order with line items
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.GetOrder(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Reserve handler
// @Summary Create a time-boxed stock hold
// @Description Inserts an advisory reservation against a product; expired holds return to the pool via the sweep
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body model.ReserveRequest true "Reserve Request"
// @Success 201 {object} model.ReserveResponse
// @Failure 400 {object} errors.CustomError
// @Security BearerAuth
// @Router /reservations [post]
func (s *RestHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.Reserve(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// AdjustStock handler
// @Summary Adjust on-hand stock
// @Description Applies a signed stock correction (recount, damage, delivery) and records an adjustment movement
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body model.AdjustStockRequest true "Adjust Stock Request"
// @Success 200 {object} model.AdjustStockResponse
// @Failure 409 {object} errors.CustomError
// @Router /internal/v1/stock/adjustments [post]
func (s *RestHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.AdjustStock(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// SweepReservations handler
// @Summary Expire lapsed reservations
// @Description Transitions all active reservations past their expiry to expired; idempotent
// @Tags Stock
// @Produce json
// @Success 200 {object} model.SweepResponse
// @Router /internal/v1/reservations/sweep [post]
func (s *RestHandler) SweepReservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.StockApp.SweepExpired(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
