package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/bootstrap"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/definition"
)

func main() {
	configPath := flag.String("config", "", "configuration file (default ./formgen.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "formgen-server: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.Must(cfg.Log.Level, cfg.Log.Development)
	defer func() { _ = logger.Sync() }()

	env, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}
	store, err := env.Definitions()
	if err != nil {
		return err
	}
	flash, closeFlash, err := env.FlashStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeFlash() }()

	srv, err := server.New(env, store, flash)
	if err != nil {
		return err
	}

	if cfg.Definitions.Watch {
		watcher, err := definition.NewWatcher(cfg.Definitions.Dir, srv.SetDefinitions, definition.WithWatchLogger(logger))
		if err != nil {
			return err
		}
		defer watcher.Close()
		watcher.Start(ctx)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.Strings("forms", store.Handles()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
