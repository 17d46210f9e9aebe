package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/fellows-tracker/internal/database"
	"github.com/deppfellow/fellows-tracker/internal/handler"
	"github.com/deppfellow/fellows-tracker/internal/repository"
	"github.com/deppfellow/fellows-tracker/internal/router"
	"github.com/deppfellow/fellows-tracker/internal/server"
	"github.com/deppfellow/fellows-tracker/internal/service"
	"github.com/spf13/cobra"
)

// ShutdownTimeout bounds how long in-flight requests get after a signal.
const ShutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	log := a.log

	// Local databases are migrated by hand with the migrate command.
	if !a.cfg.IsLocal() {
		if err := database.Migrate(ctx, &log, a.cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			a.loggerService.Shutdown()
			return err
		}
	}

	srv, err := server.New(a.cfg, &log, a.loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		a.loggerService.Shutdown()
		return err
	}

	repos := repository.NewRepositories(srv.DB.Pool)
	services := service.NewServices(repos)
	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("server forced to shutdown")
		if err == nil {
			err = shutdownErr
		}
	}

	if err == nil {
		log.Info().Msg("server exited properly")
	}
	return err
}
