package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/auth"
	"github.com/forno-rosati/bakery-orders-service/internal/catalog"
	"github.com/forno-rosati/bakery-orders-service/internal/config"
	"github.com/forno-rosati/bakery-orders-service/internal/events"
	"github.com/forno-rosati/bakery-orders-service/internal/handlers"
	"github.com/forno-rosati/bakery-orders-service/internal/metrics"
	"github.com/forno-rosati/bakery-orders-service/internal/repository"
	"github.com/forno-rosati/bakery-orders-service/internal/server"
	"github.com/forno-rosati/bakery-orders-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	logger := logrus.WithField("service", "bakery-orders")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	logger.WithField("port", cfg.Server.Port).Info("Starting bakery-orders-service")

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := repository.RunMigrations(db, logger); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	cat, err := catalog.LoadFile(os.Getenv("CATALOG_PATH"))
	if err != nil {
		logger.WithError(err).Fatal("Failed to load product catalog")
	}

	orderRepo := repository.NewPostgresOrderRepository(db, logger)

	var orderCache repository.OrderCache
	if cfg.Features.EnableOrderCaching {
		cache := repository.NewRedisOrderCache(cfg.Redis, logger)
		defer cache.Close()
		orderCache = cache
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Features.EnableOrderEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	orderService := service.NewOrderService(orderRepo, orderCache, publisher, cfg, logger)

	gate := auth.NewGate(cfg.Auth, logger)
	m := metrics.New()

	h := handlers.NewHandlers(orderService, gate, cat, m, db, logger)
	srv := server.New(cfg, h, gate, m)

	go func() {
		logger.WithFields(logrus.Fields{
			"port":           cfg.Server.Port,
			"order_caching":  cfg.Features.EnableOrderCaching,
			"order_events":   cfg.Features.EnableOrderEvents,
			"strict_updates": cfg.Features.StrictUpdateValidation,
		}).Info("Server starting")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *logrus.Entry) (*sql.DB, error) {
	dsn, err := cfg.Database.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected")
	return db, nil
}
