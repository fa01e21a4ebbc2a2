// Command server runs the word game HTTP API.
//
// @title       Wordle Backend API
// @version     1.0
// @description Daily word game engine: guess evaluation, word scheduling, attempts and statistics.
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-wordle-backend/internal/config"
	"github.com/tbourn/go-wordle-backend/internal/definition"
	httpapi "github.com/tbourn/go-wordle-backend/internal/http"
	"github.com/tbourn/go-wordle-backend/internal/lexicon"
	"github.com/tbourn/go-wordle-backend/internal/observability"
	"github.com/tbourn/go-wordle-backend/internal/repo"
	"github.com/tbourn/go-wordle-backend/internal/services"
	"github.com/tbourn/go-wordle-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		logger.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DBDriver, cfg.DBPath, cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}

	lex := lexicon.NewHandle(
		lexicon.FileSource(cfg.Game.Dictionary),
		lexicon.NewNormalizer(
			lexicon.WithWordLength(cfg.Game.WordLength),
			lexicon.WithAlphabet(cfg.Game.Alphabet),
		),
	)
	// Warm the lexicon so the first request does not pay for the load.
	go func() {
		l, err := lex.Get(ctx)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.Game.Dictionary).Msg("lexicon load failed")
			return
		}
		log.Info().Int("words", l.Len()).Msg("lexicon loaded")
	}()

	var def definition.Definer
	if cfg.Definition.Enabled {
		def = definition.NewClient(cfg.Definition.URL, cfg.Definition.Timeout)
	}
	sched := services.NewScheduler(db, lex, def, cfg.Definition.Timeout, cfg.Game.MaxRetries)
	game := services.NewGameService(db, lex, sched, cfg.Game.MaxAttempts, cfg.Game.Location)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, game, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("version", version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server failed")
		}
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info().Msg("server stopped")
}
