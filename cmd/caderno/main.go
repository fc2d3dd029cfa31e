package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	v1 "github.com/cadernoapp/caderno/internal/api/v1"
	"github.com/cadernoapp/caderno/internal/auth"
	"github.com/cadernoapp/caderno/internal/books"
	"github.com/cadernoapp/caderno/internal/config"
	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/docstore/memory"
	"github.com/cadernoapp/caderno/internal/docstore/postgres"
	"github.com/cadernoapp/caderno/internal/render"
	"github.com/cadernoapp/caderno/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("CADERNO_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("CADERNO_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open the document store.
	var store docstore.Store
	switch cfg.Store.Backend {
	case "postgres":
		if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
			return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
		}
		store, err = postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
		if err != nil {
			return err
		}
	case "memory":
		store = memory.New()
	}
	defer store.Close()

	// Create auth service over the global users collection.
	authSvc := auth.NewService(store.Collection("users"), cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	deps := &v1.Deps{
		Store:        store,
		Auth:         authSvc,
		Renderer:     render.NewChromePDF(cfg.Render.BrowserBin, cfg.Render.Timeout),
		BooksOptions: booksOptions(cfg),
	}

	// Google sign-in needs Redis for the state handshake; both are optional.
	if cfg.OAuth.GoogleClientID != "" {
		states, stateErr := auth.NewStateStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if stateErr != nil {
			return stateErr
		}
		defer states.Close()

		deps.States = states
		deps.OAuth = auth.NewGoogleProvider(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleRedirectURL)
		log.Info().Msg("google sign-in enabled")
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, deps)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}

// booksOptions translates the validated config strings into typed policies.
func booksOptions(cfg *config.Config) []books.Option {
	opts := []books.Option{}
	if cfg.Books.DeletePolicy == "unconditional" {
		opts = append(opts, books.WithDeletePolicy(books.DeleteUnconditional))
	}
	if cfg.Books.ReferenceResolution == "strict" {
		opts = append(opts, books.WithReferenceResolution(books.Strict))
	}
	return opts
}
