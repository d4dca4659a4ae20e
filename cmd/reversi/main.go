package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/bootstrap"
	"github.com/jaminalder/codex-reversi/internal/logging"
	"github.com/jaminalder/codex-reversi/internal/web"
)

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	svc := app.NewService(logger)
	svc.SetSubscriberBuffer(cfg.SubscriberBuffer)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: web.NewServer(svc, logger, web.WithHeartbeat(cfg.Heartbeat())),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("shutdown", zap.Error(err))
		}
	}()

	logger.Infof("Server is running on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("Failed to start server", zap.Error(err))
		os.Exit(1)
	}
}
