package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/marce316/go-pedidos/internal/config"
	"github.com/marce316/go-pedidos/internal/httpx"
	kafkax "github.com/marce316/go-pedidos/internal/kafka"
	"github.com/marce316/go-pedidos/internal/orders"
	"github.com/marce316/go-pedidos/internal/postgres"
	"github.com/marce316/go-pedidos/internal/products"
	"github.com/marce316/go-pedidos/internal/redisx"
	"github.com/marce316/go-pedidos/internal/users"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("db connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	userRepo := &users.Repo{DB: db}
	productRepo := &products.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	svc := orders.NewService(userRepo, productRepo, orderRepo, logger)

	// Event producers are optional; without brokers the app is a plain web app.
	var createdProd, cancelledProd *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		createdProd = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicPedidoCreated, 1024)
		createdProd.Start(ctx)
		cancelledProd = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicPedidoCancelled, 1024)
		cancelledProd.Start(ctx)
		svc.WithEvents(createdProd, cancelledProd, cfg.ServiceName)
	}

	router := httpx.NewRouter()
	(&httpx.DashboardHandler{Users: userRepo, Products: productRepo, Orders: svc, Cache: rdb, Log: logger}).Register(router)
	(&httpx.UsersHandler{Store: userRepo, Cache: rdb, Log: logger}).Register(router)
	(&httpx.ProductsHandler{Store: productRepo, Cache: rdb, Log: logger}).Register(router)
	(&httpx.PedidosHandler{Service: svc, Users: userRepo, Products: productRepo, Cache: rdb, Log: logger}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	if createdProd != nil {
		createdProd.Close()
		cancelledProd.Close()
		cancel()
		createdProd.WaitClosed()
		cancelledProd.WaitClosed()
	}
}
