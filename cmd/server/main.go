package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"sessionbook-backend/internal/catalog"
	"sessionbook-backend/internal/config"
	"sessionbook-backend/internal/database"
	"sessionbook-backend/internal/events"
	"sessionbook-backend/internal/handlers"
	xlog "sessionbook-backend/internal/log"
	"sessionbook-backend/internal/metrics"
	"sessionbook-backend/internal/repository"
	"sessionbook-backend/internal/router"
	"sessionbook-backend/internal/services"
	"sessionbook-backend/internal/websocket"
	"sessionbook-backend/internal/worker"
)

const (
	memoryQueueSize = 256
	shutdownTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		xlog.Base().Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		xlog.Configure(xlog.Config{})
		return fmt.Errorf("config: %w", err)
	}
	xlog.Configure(xlog.Config{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})
	logger := xlog.WithComponent("main")
	logger.Info().Str("env", cfg.Env).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Generate Catalog ────
	sessions := catalog.New(catalog.Generate())
	metrics.SetCatalogSize(sessions.Len())
	logger.Info().Int("sessions", sessions.Len()).Msg("catalog generated")

	// ──── Step 3: Queue and Event Broker ────
	var (
		queue  worker.Queue
		broker events.Broker
	)
	if cfg.RedisURL != "" {
		redisClients, err := database.NewRedisClients(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClients.Close()
		queue = worker.NewRedisQueue(redisClients.Queue)
		broker = events.NewRedisBroker(redisClients.PubSub)
		logger.Info().Msg("redis connected")
	} else {
		queue = worker.NewMemoryQueue(memoryQueueSize)
		broker = events.NewMemoryBroker()
		logger.Info().Msg("REDIS_URL not set, using in-process queue and broker")
	}

	// ──── Step 4: Initialize Services ────
	tickets, err := services.NewTicketService(cfg.TicketSecret)
	if err != nil {
		return err
	}
	if cfg.TicketSecret == "" {
		logger.Warn().Msg("TICKET_SECRET not set, ticket codes will not survive a restart")
	}

	bookingRepo := repository.NewBookingRepo()
	reviewSvc := services.NewReviewService(sessions, repository.NewReviewRepo())
	sessionSvc := services.NewSessionService(sessions, reviewSvc, cfg.DefaultCity)
	bookingSvc := services.NewBookingService(sessions, bookingRepo, queue, broker, tickets, xlog.WithComponent("bookings"))

	// ──── Step 5: Background Workers ────
	workerPool := worker.NewPool(queue, bookingSvc, cfg.PaymentDelay, cfg.PaymentWorkers, xlog.WithComponent("payments"))
	workerPool.Start()

	sweeper := services.NewBookingSweeper(bookingRepo, cfg.BookingTTL, cfg.SweepInterval, xlog.WithComponent("sweeper"))
	sweeper.Start()

	wsHub := websocket.NewHub(broker, bookingSvc, xlog.WithComponent("websocket"))

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		handlers.NewSessionHandler(sessionSvc),
		handlers.NewBookingHandler(bookingSvc),
		handlers.NewReviewHandler(reviewSvc),
		wsHub,
		cfg.FrontendURLs,
		cfg.RateLimitPerMinute,
		xlog.WithComponent("http"),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("sessionbook backend ready")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)

		wsHub.Close()
		workerPool.Stop()
		sweeper.Stop()
		return err
	})

	return g.Wait()
}
