package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CronApp_V0.1/internal/config"
	"CronApp_V0.1/internal/database"
	"CronApp_V0.1/internal/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is handling.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")

	done <- true
}

func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	setupLogger(cfg)

	dbService, err := database.NewService(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the patient store")
	}
	defer dbService.Close()

	apiServer, err := server.NewServer(cfg, dbService)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build the HTTP server")
	}

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, done)

	log.Info().Str("addr", apiServer.Addr).Str("env", cfg.AppEnv).Bool("auth_disabled", cfg.AuthDisabled).Msg("starting server")
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server error")
		return
	}

	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
