package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mcoot/guessfilm/internal/api"
	"github.com/mcoot/guessfilm/internal/config"
	"github.com/mcoot/guessfilm/internal/factory"
)

func main() {
	// Load config from the environment and .env
	env, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: env.LogLevel,
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, factory.FromEnv(env, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("application ready",
		slog.String("storage", env.StorageType),
		slog.String("language", env.Language),
		slog.Int("films", len(app.Films)),
		slog.Bool("write_through", env.Game.WriteThrough),
		slog.Bool("api_key_auth", app.AuthService.Enabled()),
	)

	// Run the background flusher when persistence is batched
	var flusherDone sync.WaitGroup
	if app.Flusher != nil {
		flusherDone.Add(1)
		go func() {
			defer flusherDone.Done()
			app.Flusher.Run(ctx)
		}()
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		Engine:       app.Engine,
		Dispatcher:   app.Dispatcher,
		ResourcesDir: app.ResourcesDir,
		FilmCount:    len(app.Films),
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = env.Addr
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			exitCode = 1
		}
		cancel()
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	// The flusher does its final flush on cancellation; Close covers the
	// write-through case and anything left dirty by failed writes
	flusherDone.Wait()
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer closeCancel()
	if err := app.Close(closeCtx); err != nil {
		logger.Error("failed to close application", slog.String("error", err.Error()))
		exitCode = 1
	}

	logger.Info("server stopped")
	os.Exit(exitCode)
}
