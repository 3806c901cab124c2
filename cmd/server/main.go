package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/lobus/superapp-ledger/internal/assistant"
	"github.com/lobus/superapp-ledger/internal/config"
	"github.com/lobus/superapp-ledger/internal/events"
	"github.com/lobus/superapp-ledger/internal/events/kafka"
	"github.com/lobus/superapp-ledger/internal/events/redisstream"
	"github.com/lobus/superapp-ledger/internal/features"
	"github.com/lobus/superapp-ledger/internal/handler"
	interfaces "github.com/lobus/superapp-ledger/internal/interfaces"
	"github.com/lobus/superapp-ledger/internal/logging"
	"github.com/lobus/superapp-ledger/internal/market"
	"github.com/lobus/superapp-ledger/internal/seed"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/lobus/superapp-ledger/internal/storage/memory"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

type app struct {
	router    *gin.Engine
	manager   *session.Manager
	scheduler *market.Scheduler
	publisher interfaces.EventPublisher
}

// build wires the components without starting anything
func build(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*app, error) {
	publisher, err := newPublisher(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	dir, err := seed.NewDirectory()
	if err != nil {
		return nil, fmt.Errorf("load seed directory: %w", err)
	}

	manager := session.NewManager(dir, memory.NewSessionStore[*session.Session](),
		session.WithPublisher(publisher),
		session.WithLogger(log),
	)

	board := market.NewBoard(dir.Companies())
	scheduler, err := market.NewScheduler(board, cfg.MarketSchedule, log)
	if err != nil {
		return nil, err
	}

	client := assistant.NewClient(assistant.Config{
		APIKey:   cfg.AssistantAPIKey,
		Model:    cfg.AssistantModel,
		Endpoint: cfg.AssistantEndpoint,
		Timeout:  cfg.AssistantTimeout,
		Rate:     rate.Limit(cfg.AssistantRate),
		Burst:    cfg.AssistantBurst,
	}, log)
	if !client.Configured() {
		log.Warn("ASSISTANT_API_KEY not set, assistant answers with the fallback reply")
	}
	chat := assistant.NewChat(client)

	svc := features.NewService(dir, board,
		features.WithLatency(cfg.SimulatedLatency),
		features.WithPublisher(publisher),
		features.WithLogger(log),
	)

	manager.OnClose(svc.Forget)
	manager.OnClose(func(s *session.Session) {
		chat.Forget(s.ID)
		client.Forget(s.ID)
	})

	router := handler.NewRouter(handler.Dependencies{
		Sessions:  manager,
		Features:  svc,
		Assistant: chat,
		Logger:    log,
	})
	return &app{router: router, manager: manager, scheduler: scheduler, publisher: publisher}, nil
}

func newPublisher(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (interfaces.EventPublisher, error) {
	switch cfg.EventsBackend {
	case config.EventsKafka:
		log.WithField("brokers", cfg.Brokers()).Info("publishing events to kafka")
		return kafka.NewPublisher(cfg.Brokers(), cfg.KafkaTopic), nil
	case config.EventsRedis:
		client, err := redisstream.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		log.WithField("stream", cfg.RedisStream).Info("publishing events to redis")
		return redisstream.NewPublisher(client, cfg.RedisStream, cfg.RedisMaxLen), nil
	default:
		return events.NewLogPublisher(log), nil
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.publisher.Close(); err != nil {
			log.WithError(err).Error("failed to close event publisher")
		}
	}()

	a.scheduler.Start()
	defer a.scheduler.Stop()

	srv := &http.Server{Addr: cfg.Addr(), Handler: a.router}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	a.manager.CloseAll(shutdownCtx)
	return err
}
