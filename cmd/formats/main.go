package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fairwaylabs/formats-api/internal/catalog"
	"github.com/fairwaylabs/formats-api/internal/logic"
	"github.com/fairwaylabs/formats-api/internal/store"
)

// localSession is the single session the CLI keeps its state under
const localSession = "local"

// app is everything a command needs, built once per invocation
type app struct {
	logger   *zap.Logger
	store    store.Store
	formats  logic.FormatService
	sessions logic.SessionService
}

type rootOptions struct {
	dbPath       string
	verbose      bool
	suggestDelay time.Duration
	demoDelay    time.Duration
}

func main() {
	// cobra has already printed the error
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:   "formats",
		Short: "Browse, search and compare golf game formats",
		Long: `formats is a terminal companion for picking a golf game.

Search the catalog, filter it, compare formats side by side and watch short
explainers. Favorites, recent searches and recently viewed formats are kept
in a local SQLite file.

Run "formats browse" for the interactive browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", getEnv("FORMATS_DB", defaultDBPath()), "path of the local state database")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().DurationVar(&opts.suggestDelay, "suggest-delay", 200*time.Millisecond, "quiet time before suggestions refresh")
	root.PersistentFlags().DurationVar(&opts.demoDelay, "demo-delay", 2500*time.Millisecond, "time each demo step is shown while playing")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newCompareCmd(a),
		newSuggestCmd(a),
		newFavCmd(a),
		newRecentCmd(a),
		newDemoCmd(a, opts),
		newBrowseCmd(a, opts),
	)
	return root
}

func (a *app) open(opts *rootOptions) error {
	level := zapcore.WarnLevel
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	formats, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	st, err := store.NewSQLiteStore(opts.dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.dbPath, err)
	}
	a.store = st
	a.formats = logic.NewFormatService(formats)
	// Local state never expires, like browser local storage
	a.sessions = logic.NewSessionService(st, formats, 0, logger)

	logger.Debug("Local state opened", zap.String("path", opts.dbPath))
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "formats.db"
	}
	return filepath.Join(dir, "golf-formats", "state.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
