package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aebalz/mindful-journey/internal/handler"
	fiberserver "github.com/aebalz/mindful-journey/pkg/fiber"
	ginserver "github.com/aebalz/mindful-journey/pkg/gin"
)

const shutdownTimeout = 10 * time.Second

func serveAction(c *cli.Context) error {
	app, err := newApplication(c)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg, log := app.cfg, app.log
	handlers := &handler.Handlers{
		Health: handler.NewHealthHandler(cfg.StorageDriver, app.ping),
		Moods:  handler.NewMoodHandler(app.moods, app.chat),
		Chat:   handler.NewChatHandler(app.chat),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	switch cfg.ServerFramework {
	case "gin":
		router := ginserver.NewGinServer(cfg, handlers, log)
		srv, errCh := ginserver.StartGinServer(router, cfg, log)
		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("gin server: %w", err)
			}
		case <-quit:
		}
		log.Info().Msg("shutting down gin server")
		if err := ginserver.ShutdownGinServer(srv, shutdownTimeout); err != nil {
			return err
		}

	default:
		fiberApp := fiberserver.NewFiberServer(cfg, handlers, log)
		errCh := make(chan error, 1)
		go func() { errCh <- fiberserver.StartFiberServer(fiberApp, cfg, log) }()
		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("fiber server: %w", err)
			}
		case <-quit:
		}
		log.Info().Msg("shutting down fiber server")
		if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("fiber shutdown: %w", err)
		}
	}

	log.Info().Msg("server gracefully stopped")
	return nil
}
