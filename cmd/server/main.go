package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
	appidentity "github.com/escrowdesk/backend/internal/application/identity"
	applisting "github.com/escrowdesk/backend/internal/application/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/infrastructure/auth"
	"github.com/escrowdesk/backend/internal/infrastructure/cache"
	"github.com/escrowdesk/backend/internal/infrastructure/config"
	"github.com/escrowdesk/backend/internal/infrastructure/event"
	"github.com/escrowdesk/backend/internal/infrastructure/logger"
	"github.com/escrowdesk/backend/internal/infrastructure/notification"
	"github.com/escrowdesk/backend/internal/infrastructure/payment"
	"github.com/escrowdesk/backend/internal/infrastructure/persistence"
	"github.com/escrowdesk/backend/internal/infrastructure/scheduler"
	"github.com/escrowdesk/backend/internal/infrastructure/storage"
	httpiface "github.com/escrowdesk/backend/internal/interfaces/http"
	"github.com/escrowdesk/backend/internal/interfaces/http/handler"
	"github.com/escrowdesk/backend/internal/interfaces/http/middleware"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting escrowdesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Receipt idempotency store. Redis settles the cross-instance race for a
	// receipt reference; the in-memory store is the single-instance fallback.
	var receiptStore shared.IdempotencyStore
	if redisStore, err := cache.NewRedisReceiptStore(&cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory receipt store",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		receiptStore = cache.NewInMemoryReceiptStore()
	} else {
		receiptStore = redisStore
		log.Info("Receipt store connected", zap.String("addr", cfg.Redis.Addr()))
	}
	defer func() {
		if err := receiptStore.Close(); err != nil {
			log.Error("Error closing receipt store", zap.Error(err))
		}
	}()

	// External settlement-lookup adapter
	verifier, err := payment.NewTelebirrAdapter(payment.NewTelebirrConfig(&cfg.Verifier))
	if err != nil {
		log.Fatal("Failed to initialize payment verifier", zap.Error(err))
	}

	// Receipt screenshot storage
	var receiptStorage appescrow.ReceiptStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ReceiptStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize receipt storage", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			cancel()
			log.Fatal("Failed to ensure receipt bucket", zap.Error(err))
		}
		cancel()
		receiptStorage = s3Storage
		log.Info("Receipt storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		receiptStorage = storage.NewNoOpReceiptStorage()
	}

	// Event pipeline: services write events to the outbox, the processor
	// delivers them to the in-process bus, subscribers handle them from there.
	eventSerializer := event.NewEventSerializerWithDefaults()
	eventBus := event.NewInMemoryEventBus(log)
	eventPublisher := event.NewDurableEventPublisher(db.DB, eventSerializer)
	outboxRepo := persistence.NewGormOutboxRepository(db.DB)

	if cfg.Webhook.Enabled {
		notifier := notification.NewWebhookNotifier(&cfg.Webhook, log)
		eventBus.Subscribe(notifier)
		log.Info("Webhook notifier registered",
			zap.String("url", cfg.Webhook.URL),
			zap.Strings("events", notifier.EventTypes()),
		)
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if cfg.Event.ProcessorEnabled {
		processorConfig := event.DefaultOutboxProcessorConfig()
		processorConfig.BatchSize = cfg.Event.BatchSize
		processorConfig.PollInterval = cfg.Event.PollInterval
		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", processorConfig.BatchSize),
			zap.Duration("poll_interval", processorConfig.PollInterval),
		)
	}

	// Transaction scopes and repositories
	listingScope := persistence.NewGormListingTransactionScope(db.DB)
	escrowScope := persistence.NewGormEscrowTransactionScope(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	userService := appidentity.NewUserService(userRepo, log)
	accountService := applisting.NewAccountService(listingScope, eventPublisher, log)
	reservationService := applisting.NewReservationService(listingScope, cfg.Reservation.TTL, eventPublisher, log)
	expirationService := applisting.NewReservationExpirationService(listingScope, eventPublisher, log)
	teardownService := appescrow.NewTeardownService(escrowScope, log)
	teardownScheduler := scheduler.NewDeferredTeardownScheduler(teardownService, log)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := teardownScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping teardown scheduler", zap.Error(err))
		}
	}()
	orderService := appescrow.NewOrderService(escrowScope, teardownScheduler, cfg.Escrow.TeardownDelay, eventPublisher, log)
	withdrawalService := appescrow.NewWithdrawalService(escrowScope, cfg.Escrow.MinWithdrawal, eventPublisher, log)
	verificationService := appescrow.NewPaymentVerificationService(verifier, receiptStore, receiptStorage, cfg.Escrow.Receivers, log)

	// Reservation expiry sweeper
	if cfg.Reservation.SweepEnabled {
		sweeperConfig := scheduler.DefaultReservationSweeperConfig()
		sweeperConfig.CheckInterval = cfg.Reservation.CheckInterval
		sweeper := scheduler.NewReservationSweeper(sweeperConfig, expirationService, log)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatal("Failed to start reservation sweeper", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := sweeper.Stop(stopCtx); err != nil {
				log.Error("Error stopping reservation sweeper", zap.Error(err))
			}
		}()
		log.Info("Reservation sweeper started",
			zap.Duration("check_interval", sweeperConfig.CheckInterval),
			zap.Duration("reservation_ttl", cfg.Reservation.TTL),
		)
	}

	// HTTP layer
	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine := httpiface.NewRouter(httpiface.RouterConfig{
		Logger:            log,
		JWTService:        jwtService,
		MaxBodySize:       cfg.HTTP.MaxBodySize,
		RateLimiter:       rateLimiter,
		HealthHandler:     handler.NewHealthHandler(db, version),
		UserHandler:       handler.NewUserHandler(userService, log),
		AccountHandler:    handler.NewAccountHandler(accountService, reservationService, log),
		OrderHandler:      handler.NewOrderHandler(orderService, log),
		PaymentHandler:    handler.NewPaymentHandler(verificationService, log),
		WithdrawalHandler: handler.NewWithdrawalHandler(withdrawalService, log),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
