package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"keepapush/internal/config"
	"keepapush/internal/connection"
	"keepapush/internal/product"
	"keepapush/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	asins := flag.Args()
	if len(asins) == 0 {
		fmt.Fprintln(os.Stderr, "usage: fetcher [-config path] ASIN [ASIN...]")
		os.Exit(2)
	}

	// .env is optional; config env expansion picks up whatever it sets.
	godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting fetcher",
		"version", version.Version,
		"commit", version.Commit,
		"url", cfg.API.WSURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	mgr := connection.NewManager(cfg.ManagerConfig(), logger)
	if err := mgr.Connect(ctx); err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer mgr.Close()

	exitCode := 0
	for _, asin := range asins {
		snap, err := mgr.GetHistoricalPrices(ctx, asin, cfg.API.RequestTimeout)
		if err != nil {
			logger.Error("fetch failed", "asin", asin, "error", err)
			exitCode = 1
			if ctx.Err() != nil {
				break
			}
			continue
		}
		printSnapshot(asin, snap)
	}

	mgr.Close()
	os.Exit(exitCode)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// newLogger builds the root handler. With a log file configured, output is
// size-rotated; otherwise it goes to stderr.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func printSnapshot(asin string, snap product.Snapshot) {
	fmt.Printf("=== %s ===\n", asin)

	types := make([]string, 0, len(snap))
	for pt := range snap {
		types = append(types, string(pt))
	}
	sort.Strings(types)

	for _, name := range types {
		history := snap[product.PriceType(name)]
		if len(history) == 0 {
			continue
		}
		last := history[len(history)-1]
		fmt.Printf("  %-32s %5d points, latest %d at %s\n",
			name, len(history), last.Value, last.Time.Format("2006-01-02 15:04"))
	}
}
