package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/auth"
	"github.com/xavierca1/ligue-leads/internal/infra/dedup"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/gemini"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/scheduler"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"github.com/xavierca1/ligue-leads/internal/logger"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const (
	bcryptCost      = 12
	sendJobTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	store, err := openStorage(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open storage", zap.Error(err))
	}

	// 2. Adapters
	hasher := auth.NewBcryptHasher(bcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	generator := gemini.NewClient(cfg.Generation.APIKey, cfg.Generation.BaseURL, cfg.Generation.Model)
	mailSender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	sendScheduler := scheduler.New(sendJobTimeout, zlog.Named("scheduler"))

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	// 3. Optional RabbitMQ
	var publisher usecase.EventPublisher = queue.NopProducer{}
	var brokerState handlers.ConnectionState
	var rabbit *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			zlog.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		publisher = queue.NewProducer(rabbit.Ch)
		brokerState = rabbit

		consumerCh, err := rabbit.Conn.Channel()
		if err != nil {
			zlog.Fatal("failed to open consumer channel", zap.Error(err))
		}
		alertWorker := queue.NewWorker(consumerCh, store.accounts, mailSender, zlog.Named("interest-worker"))
		go func() {
			if err := alertWorker.Start(workerCtx, queue.QueueName); err != nil {
				zlog.Error("interest worker stopped", zap.Error(err))
			}
		}()
	} else {
		zlog.Info("RABBITMQ_URL not set, interest events disabled")
	}

	// 4. Optional Redis dedup for the inbound webhook
	var deduper usecase.Deduplicator
	var redisPinger handlers.Pinger
	var closeRedis func() error
	if cfg.RedisURL != "" {
		rdb, err := dedup.Connect(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		deduper = dedup.NewFilter(rdb)
		redisPinger = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		closeRedis = rdb.Close
	}

	// 5. Use cases
	registerUC := usecase.NewRegisterAccountUseCase(store.accounts, hasher, zlog)
	loginUC := usecase.NewAuthenticateUseCase(store.accounts, hasher, tokens)
	submitUC := usecase.NewSubmitLeadUseCase(store.leads, generator, sendScheduler, mailSender, usecase.SubmitLeadConfig{
		Attempts:      cfg.Generation.Attempts,
		Backoff:       cfg.Generation.Backoff,
		Delay:         cfg.NotificationDelay,
		PublicBaseURL: cfg.PublicBaseURL,
	}, zlog)
	queryUC := usecase.NewLeadQueryUseCase(store.leads, sendScheduler, zlog)
	interestUC := usecase.NewInterestUseCase(store.leads, publisher, zlog)
	adminUC := usecase.NewAdminReportUseCase(store.accounts, store.leads, store.replies)
	inboundUC := usecase.NewRecordInboundReplyUseCase(store.replies, store.leads, deduper, zlog)

	if cfg.AdminConfigured() {
		if err := registerUC.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			zlog.Fatal("failed to seed admin account", zap.Error(err))
		}
	} else {
		zlog.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, no admin account seeded; admin routes will answer 403")
	}

	// 6. Background workers
	staleWorker := worker.NewStaleNotificationWorker(store.leads, cfg.StaleNotificationAfter, zlog.Named("stale-worker"))
	go staleWorker.Start(workerCtx)

	limiter := middleware.NewRateLimiter(10, 10, zlog)
	limiter.StartCleanup(workerCtx, 5*time.Minute, 10*time.Minute)

	// 7. HTTP
	router := newRouter(WebHandlers{
		Auth:       handlers.NewAuthHandler(registerUC, loginUC, zlog),
		Validation: handlers.NewValidationHandler(registerUC, zlog),
		Leads:      handlers.NewLeadHandler(submitUC, queryUC, interestUC, cfg.ConfirmationRedirectURL, zlog),
		Admin:      handlers.NewAdminHandler(adminUC, zlog),
		Webhook:    handlers.NewWebhookHandler(inboundUC, cfg.InboundWebhookSecret, zlog),
		Health:     handlers.NewHealthHandler(store.pinger, brokerState, redisPinger, sendScheduler),
	}, tokens, limiter, cfg.AllowedOrigins(), zlog)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http shutdown", zap.Error(err))
	}
	if err := sendScheduler.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("scheduler shutdown", zap.Error(err))
	}
	stopWorkers()

	if rabbit != nil {
		if err := rabbit.Close(); err != nil {
			zlog.Warn("rabbitmq close", zap.Error(err))
		}
	}
	if closeRedis != nil {
		if err := closeRedis(); err != nil {
			zlog.Warn("redis close", zap.Error(err))
		}
	}
	if err := store.close(shutdownCtx); err != nil {
		zlog.Warn("storage close", zap.Error(err))
	}
	zlog.Info("bye")
}
