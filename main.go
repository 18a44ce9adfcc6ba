package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/config"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/consumer"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/handler"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/service"
	"github.com/Eursukkul/booking-microservice/entry-service/pkg/database"
	"github.com/Eursukkul/booking-microservice/entry-service/pkg/payment"
	"github.com/Eursukkul/booking-microservice/entry-service/pkg/qrtoken"
	"github.com/Eursukkul/booking-microservice/entry-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("entry service stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Repositories
	var (
		eventRepo   repository.EventRepository
		bookingRepo repository.BookingRepository
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		eventRepo = repository.NewMemoryEventRepository()
		bookingRepo = repository.NewMemoryBookingRepository()
		logger.Warn("using in-memory storage, state is lost on restart")
	default:
		db, err := database.NewPostgresDB(cfg.DSN(), database.PoolConfig{
			MaxOpenConns:    cfg.DBMaxConns,
			MaxIdleConns:    cfg.DBMaxConns / 2,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			return err
		}
		eventRepo = repository.NewEventRepository(db)
		bookingRepo = repository.NewBookingRepository(db)
	}

	// QR token issuer
	var issuer qrtoken.Issuer
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}
		issuer = qrtoken.NewRedisIssuer(rdb, cfg.QRTokenTTL)
	} else {
		issuer = qrtoken.NewMemoryIssuer()
		logger.Warn("REDIS_ADDR not set, QR tokens are kept in memory")
	}

	links, err := payment.NewLinkGenerator(cfg.PaymentBaseURL, cfg.PaymentSecret)
	if err != nil {
		return err
	}

	// RabbitMQ: publish domain events, consume payment confirmations
	var publisher service.EventPublisher
	var mqConsumer *rabbitmq.Consumer
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, logger)
		if err != nil {
			return err
		}
		defer mqPublisher.Close()
		publisher = mqPublisher

		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitURL, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("RABBITMQ_URL not set, messaging disabled")
	}

	// Services
	eventSvc := service.NewEventService(eventRepo, logger)
	bookingSvc := service.NewGroupBookingService(bookingRepo, eventRepo, issuer, links, publisher, logger)

	var paymentConsumer *consumer.PaymentConsumer
	if mqConsumer != nil {
		msgs, err := mqConsumer.Consume()
		if err != nil {
			mqConsumer.Close()
			return err
		}
		paymentConsumer = consumer.NewPaymentConsumer(bookingSvc, logger)
		paymentConsumer.Start(msgs)
	}
	defer stopConsumer(mqConsumer, paymentConsumer, logger)

	e := newRouter(eventSvc, bookingSvc, handler.VenueClock(loc), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("entry service starting", "port", cfg.ServerPort, "storage", cfg.StorageDriver)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// stopConsumer cancels the payment subscription and waits for the in-flight
// delivery to be settled before the connection is torn down.
func stopConsumer(mq *rabbitmq.Consumer, pc *consumer.PaymentConsumer, logger *slog.Logger) {
	if mq == nil {
		return
	}
	defer mq.Close()
	if pc == nil {
		return
	}

	if err := mq.Cancel(); err != nil {
		logger.Warn("cancel payment subscription", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pc.Wait(ctx); err != nil {
		logger.Warn("payment consumer did not drain before shutdown", "error", err)
	}
}

func newRouter(eventSvc service.EventService, bookingSvc service.GroupBookingService, clock handler.Clock, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "entry-service"})
	})

	handler.NewEventHandler(eventSvc).RegisterRoutes(e.Group("/api/v1/events"))
	handler.NewGroupBookingHandler(bookingSvc, clock).RegisterRoutes(e)

	return e
}
