package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/jaminalder/codex-reversi/internal/bootstrap"
	"github.com/jaminalder/codex-reversi/internal/logging"
	"github.com/jaminalder/codex-reversi/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		return fmt.Errorf("setup configuration: %w", err)
	}
	// stdout belongs to the screen, so logs go to a file
	logger, err := logging.NewConsole(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Reversi started")
	if err := tui.New(screen, logger).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Errorw("table stopped", zap.Error(err))
		return err
	}
	logger.Info("Reversi closed")
	return nil
}
