package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/seanblong/transcriptsearch/internal/api"
	"github.com/seanblong/transcriptsearch/internal/auth"
	"github.com/seanblong/transcriptsearch/internal/config"
	"github.com/seanblong/transcriptsearch/internal/corpus"
	"github.com/seanblong/transcriptsearch/internal/metrics"
	"github.com/seanblong/transcriptsearch/internal/search"
	"github.com/spf13/pflag"
)

func main() {
	// Create flagset for configuration
	fs := pflag.NewFlagSet("transcriptsearch-api", pflag.ExitOnError)

	// Load configuration
	cfg, err := config.Load("", fs, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	fs.Usage = cfg.Usage

	// Set up logging
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level '%s': %v", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	zlog.Logger = logger
	logger.Info().
		Str("corpus_dir", cfg.CorpusDir).
		Str("extension", cfg.Extension).
		Bool("sort_files", cfg.SortFiles).
		Bool("auth_enabled", cfg.Auth.Enabled).
		Str("log_level", cfg.LogLevel).
		Msg("starting transcriptsearch api")
	if !cfg.SortFiles {
		logger.Info().Msg("results follow directory-listing order, which is platform dependent; set --sort-files for name order")
	}

	c := corpus.New(cfg.CorpusDir, cfg.Extension, cfg.SortFiles)
	if err := c.Readable(); err != nil {
		logger.Warn().Err(err).Msg("corpus directory is not readable yet; searches will fail until it is")
	}

	links := search.Links{EmbedBase: cfg.EmbedBaseURL, ThumbnailBase: cfg.ThumbnailBaseURL}
	svc := search.NewService(c, links, cfg.Workers, metrics.Default())

	gate := auth.NewGate(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL, cfg.Auth.Enabled)
	if gate.Enabled() {
		logger.Info().Msg("Authentication is ENABLED")
	} else {
		logger.Info().Msg("Authentication is DISABLED - running in open mode")
	}

	handler := api.NewRouter(api.Deps{
		Search:        svc,
		Health:        c,
		Gate:          gate,
		Metrics:       promhttp.Handler(),
		Logger:        logger,
		AllowedOrigin: cfg.AllowedOrigin,
		Timeout:       10 * time.Second,
	})

	address := fmt.Sprintf(":%d", cfg.Port)
	s := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logger.Info().Str("addr", s.Addr).Msg("api server listening")
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	logger.Info().Msg("api server stopped")
}
