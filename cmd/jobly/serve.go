package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agamjotsodhi/jobly/internal/config"
	"github.com/agamjotsodhi/jobly/internal/handler"
	"github.com/agamjotsodhi/jobly/internal/logger"
	"github.com/agamjotsodhi/jobly/internal/middleware"
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/router"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/service"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long inflight requests may keep running
// after SIGINT/SIGTERM before the HTTP server is forced down.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// serve wires the whole application together, bottom up: config,
// logging, the server container (DB, Redis, job workers), then
// repositories, services, handlers, middleware and the router. It
// blocks until the server fails or a termination signal arrives.
func serve() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	loggerService := logger.NewLoggerService(cfg)
	log := loggerService.Logger()
	defer loggerService.Shutdown(5 * time.Second)

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewService(s, repos)
	if err != nil {
		return err
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	s.SetupHTTPServer(router.Setup(middlewares, handlers))

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")

	return nil
}
