package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turf-booking/internal/config"
	"turf-booking/internal/infrastructure/cache"
	"turf-booking/internal/infrastructure/database"
	"turf-booking/internal/infrastructure/storage"
	"turf-booking/internal/logger"
	"turf-booking/internal/notification"
	"turf-booking/internal/receipt"
	"turf-booking/internal/routes"
	"turf-booking/internal/usecase/payment"
	"turf-booking/pkg/mqtt"
	"turf-booking/pkg/obs"

	"go.uber.org/zap"
)

const serviceName = "turf-booking"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, env, cfg.Tracing)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var turfCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis, serviceName+":")
		if err != nil {
			logger.Warn("Redis unavailable, turf list caching disabled", zap.Error(err))
		} else {
			turfCache = redisCache
			defer redisCache.Close()
		}
	}

	notifiers := notification.Multi{notification.NewLogNotifier()}

	if cfg.RabbitMQ.URL != "" {
		publisher, err := notification.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, broker notifications disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, notification.NewBrokerNotifier(publisher))
			defer publisher.Close()
		}
	}

	if cfg.MQTT.Broker != "" {
		mqttClient := mqtt.NewClient(&mqtt.Config{
			Broker:               cfg.MQTT.Broker,
			ClientID:             cfg.MQTT.ClientID,
			Username:             cfg.MQTT.Username,
			Password:             cfg.MQTT.Password,
			KeepAlive:            cfg.MQTT.KeepAlive,
			ConnectTimeout:       cfg.MQTT.ConnectTimeout,
			PublishTimeout:       cfg.MQTT.PublishTimeout,
			MaxReconnectInterval: time.Minute,
		})
		if err := mqttClient.Connect(); err != nil {
			logger.Warn("MQTT broker unavailable, display notifications disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, notification.NewDisplayNotifier(mqttClient, cfg.MQTT.TopicPrefix))
			defer mqttClient.Disconnect()
		}
	}

	images, err := storage.NewImageStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxSize)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	router := routes.SetupRoutes(ctx, cfg, db, routes.Dependencies{
		Cache:    turfCache,
		Notifier: notifiers,
		Images:   images,
		Random:   payment.MathRandSource{},
		Receipts: receipt.NewTextGenerator(cfg.App.Name),
	})

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("Failed to flush traces", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
