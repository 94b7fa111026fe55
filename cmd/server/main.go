package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"comanda-be/internal/api"
	"comanda-be/internal/auth"
	"comanda-be/internal/config"
	"comanda-be/internal/logger"
	"comanda-be/internal/menu"
	"comanda-be/internal/middleware"
	"comanda-be/internal/order"
	"comanda-be/internal/printer"
	"comanda-be/internal/receipt"
	"comanda-be/internal/store"
	"comanda-be/internal/table"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	db, _ := strconv.Atoi(cfg.StoreDB)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.StoreAddr,
		Password: cfg.StorePassword,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("store unreachable", zap.String("addr", cfg.StoreAddr), zap.Error(err))
	}
	defer rdb.Close()

	kv := store.NewRedis(rdb)
	catalog := menu.Default()

	tables := table.NewRegistry(kv)
	if err := tables.Seed(context.Background()); err != nil {
		log.Fatal("table seed failed", zap.Error(err))
	}

	orders := order.NewService(order.NewRepository(kv), catalog)
	tokens := auth.NewService(cfg.JWTSecret, cfg.OperatorEmail, cfg.OperatorPassHash)

	// TODO: plug the platform BLE scanner in once the deployment target
	// settles, printing stays disabled until then
	transport := printer.NewTransport(printer.NoScanner{}, cfg.PrinterName, cfg.PrinterStateFile)
	defer transport.Close()
	dispatcher := printer.NewDispatcher(transport, orders, receipt.NewFormatter(catalog))

	handler := api.NewHandler(tokens, tables, orders, dispatcher, catalog)

	var root http.Handler = api.Router(handler, tokens)
	root = middleware.CORS("http://localhost:3000")(root)
	root = logger.LoggingMiddleware(root)
	root = logger.RequestIDMiddleware(root)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	log.Info("server listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, root); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
