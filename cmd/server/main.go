package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farrelnajib/yaraku-assignment/internal/app"
	"github.com/farrelnajib/yaraku-assignment/internal/config"
	"github.com/farrelnajib/yaraku-assignment/internal/server"
	"github.com/farrelnajib/yaraku-assignment/internal/storage"
	"github.com/farrelnajib/yaraku-assignment/internal/util"
	"github.com/farrelnajib/yaraku-assignment/pkg/pubsub"
	"github.com/farrelnajib/yaraku-assignment/pkg/queue"
	"github.com/farrelnajib/yaraku-assignment/pkg/store"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	dataStore, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init postgres store: %v", err)
	}
	files, err := storage.NewFileStore(cfg.ExportDir)
	if err != nil {
		log.Fatalf("failed to init export storage: %v", err)
	}
	exportQueue, err := queue.NewRedisQueue(queue.RedisQueueConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		Stream:   cfg.QueueStream,
		Group:    cfg.QueueGroup,
	})
	if err != nil {
		log.Fatalf("failed to init export queue: %v", err)
	}
	publisher, err := pubsub.NewRedisPublisher(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("failed to init notification publisher: %v", err)
	}

	appCore, err := app.New(app.Config{
		Store:     dataStore,
		Queue:     exportQueue,
		Publisher: publisher,
		Files:     files,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}
	httpServer, err := server.New(server.Config{App: appCore})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportQueue.Start(ctx, cfg.QueueConcurrency, appCore.ProcessExport)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		_ = exportQueue.Close()
		_ = publisher.Close()
		return nil
	})
	if err := group.Wait(); err != nil {
		logger.Error("server error", "err", err)
	}
}
