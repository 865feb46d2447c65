package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hhandc/GoodUsed/adapters"
	"github.com/hhandc/GoodUsed/api"
	"github.com/hhandc/GoodUsed/config"
	"github.com/hhandc/GoodUsed/search"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using process environment")
	}

	defaultCfg := config.DefaultConfig()
	addrDefault := defaultCfg.ListenAddr
	if value, ok := config.EnvString("GOODUSED_ADDR"); ok {
		addrDefault = value
	}
	cacheDefault := defaultCfg.CacheSize
	if value, ok, err := config.EnvInt("GOODUSED_CACHE_SIZE"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid GOODUSED_CACHE_SIZE: %v\n", err)
		os.Exit(1)
	} else if ok {
		cacheDefault = value
	}

	addr := flag.String("addr", addrDefault, "HTTP listen address")
	searchTimeoutS := flag.Int("search-timeout", int(defaultCfg.SearchTimeout.Seconds()), "Total search budget (seconds)")
	fetchTimeoutS := flag.Int("fetch-timeout", int(defaultCfg.FetchTimeout.Seconds()), "Per-source fetch timeout (seconds)")
	similarity := flag.Float64("similarity", defaultCfg.TitleSimilarity, "Minimum title token-overlap for clustering")
	tolerance := flag.Float64("price-tolerance", defaultCfg.PriceTolerance, "Relative price band for clustering")
	cacheSize := flag.Int("cache-size", cacheDefault, "Result cache entries")
	cacheTTLMin := flag.Int("cache-ttl", int(defaultCfg.CacheTTL.Minutes()), "Result cache TTL (minutes)")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.ListenAddr = *addr
	cfg.SearchTimeout = time.Duration(*searchTimeoutS) * time.Second
	cfg.FetchTimeout = time.Duration(*fetchTimeoutS) * time.Second
	cfg.TitleSimilarity = *similarity
	cfg.PriceTolerance = *tolerance
	cfg.CacheSize = *cacheSize
	cfg.CacheTTL = time.Duration(*cacheTTLMin) * time.Minute
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := search.NewMetrics()
	registry := adapters.Registry(cfg, nil)
	service := search.New(cfg, registry, metrics)
	handler := api.NewHandler(service, metrics)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening",
			slog.String("addr", cfg.ListenAddr),
			slog.Int("sources", len(registry)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
