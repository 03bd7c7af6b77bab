package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fairwaylabs/formats-api/internal/catalog"
	"github.com/fairwaylabs/formats-api/internal/config"
	"github.com/fairwaylabs/formats-api/internal/handlers"
	"github.com/fairwaylabs/formats-api/internal/logic"
	"github.com/fairwaylabs/formats-api/internal/store"
	"github.com/fairwaylabs/formats-api/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formats, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	sugar.Infow("Catalog loaded", "formats", formats.Len())

	st, err := store.Open(ctx, store.Options{
		Backend:     cfg.StateBackend,
		RedisURL:    cfg.RedisURL,
		PostgresURL: cfg.PostgresURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		return fmt.Errorf("open %s state store: %w", cfg.StateBackend, err)
	}
	defer st.Close()
	sugar.Infow("State store ready", "backend", cfg.StateBackend)

	clock := clockwork.NewRealClock()
	scorecards := logic.NewScorecardService(formats, clock, cfg.ScorecardTTL, logger)

	janitor := worker.NewJanitor(worker.JanitorConfig{
		Name:     "scorecards",
		Interval: cfg.SweepInterval,
		Clock:    clock,
		Logger:   logger,
	}, scorecards)
	janitor.Start(ctx)
	defer janitor.Stop()

	h := handlers.New(handlers.Config{
		Store:      st,
		Logger:     logger,
		Formats:    logic.NewFormatService(formats),
		Sessions:   logic.NewSessionService(st, formats, cfg.SessionTTL, logger),
		Scorecards: scorecards,

		SuggestDelay:  cfg.SuggestDelay,
		DemoStepDelay: cfg.DemoStepDelay,
	})

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: handlers.NewRouter(h, handlers.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("HTTP server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	sugar.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
