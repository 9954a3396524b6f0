package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	orderapp "github.com/farhanmaulana/clinic-orders/application/order"
	productapp "github.com/farhanmaulana/clinic-orders/application/product"
	stockapp "github.com/farhanmaulana/clinic-orders/application/stock"
	userapp "github.com/farhanmaulana/clinic-orders/application/user"
	"github.com/farhanmaulana/clinic-orders/cmd/config"
	redisclient "github.com/farhanmaulana/clinic-orders/cmd/redis"
	_ "github.com/farhanmaulana/clinic-orders/docs"
	orderRepo "github.com/farhanmaulana/clinic-orders/repository/order"
	productRepo "github.com/farhanmaulana/clinic-orders/repository/product"
	redisRepo "github.com/farhanmaulana/clinic-orders/repository/redis"
	stockRepo "github.com/farhanmaulana/clinic-orders/repository/stock"
	txRepo "github.com/farhanmaulana/clinic-orders/repository/tx"
	userRepo "github.com/farhanmaulana/clinic-orders/repository/user"
	"github.com/farhanmaulana/clinic-orders/thirdparty/rabbitmq"
	"github.com/farhanmaulana/clinic-orders/transport"
	"github.com/farhanmaulana/clinic-orders/utils/logger"
	validatorx "github.com/farhanmaulana/clinic-orders/utils/validator"
)

// @title CLINIC ORDERS API
// @version 1.0
// @description Order creation and stock-commit API for clinic supplies
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	validatorx.Init()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database; the pool is owned here and passed down by
	// reference, nothing holds it as a process global
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	rdb, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = rdb.Close()
	}()

	// RabbitMQ publisher for delayed reservation-expiry messages
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("rabbitmq publisher unavailable, reservation expiry will rely on periodic sweeps", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	StockRepo := stockRepo.NewStockRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository(rdb)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(ProductRepo)
	StockApp := stockapp.NewStockApp(cfg, ProductRepo, StockRepo, publisher)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, ProductRepo, StockRepo, StockApp)

	httpTransport := transport.NewTransport(UserApp, ProductApp, OrderApp, StockApp, cfg.Auth.InternalAPIKey)

	// Expiry consumer triggers the sweep endpoint when a delayed message fires
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		"http://localhost:"+cfg.Server.Port, cfg.Auth.InternalAPIKey)
	if err != nil {
		logger.Warn("rabbitmq consumer unavailable", zap.Error(err))
	} else {
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			logger.Error("err start expiry consumer", zap.Error(err))
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
