package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/redislock"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		log.Fatalf("dispatch service stopped: %v", err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	if err := postgres.Migrate(configs.DSN()); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	gormDB, err := postgres.Open(configs.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	publisher, closePublisher := cmd.NewEventPublisher(configs, logger)
	defer func() {
		if cerr := closePublisher(); cerr != nil {
			logger.Error("failed to close event publisher", slog.String("error", cerr.Error()))
		}
	}()

	var locker *redislock.Locker
	if configs.RedisURL == "" {
		logger.Warn("redis not configured, cycles are not locked across instances")
	} else {
		client, err := redislock.Connect(ctx, configs.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = redislock.NewLocker(client, configs.CycleLockTTL)
	}

	m := metrics.New()
	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		m,
		logger,
	)

	e := app.CreateHTTPRouter()
	jobManager := app.CreateJobManager(locker)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		if err := jobManager.StartAll(); err != nil {
			_ = e.Close()
			return err
		}
		logger.Info("dispatch cycles scheduled",
			slog.String("assign", configs.AssignSchedule),
			slog.String("move", configs.MoveSchedule))

		<-gctx.Done()
		jobManager.StopAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
