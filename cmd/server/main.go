package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/tripgest/internal/api"
	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/logging"
	"github.com/dgallion1/tripgest/internal/metrics"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/suggest"
	"github.com/dgallion1/tripgest/internal/tripstore"
	"github.com/dgallion1/tripgest/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("load configuration", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("open trip store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}

	var opts []suggest.Option
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, suggest.WithBaseURL(cfg.AnthropicBaseURL))
	}
	llm := suggest.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, opts...)
	m := metrics.New()

	orch := pipeline.NewOrchestrator(cfg, llm, store, m, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, store, llm, m, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting tripgest", "port", cfg.Port, "store", cfg.StoreBackend, "version", version.Version)
	err = serve(httpServer, sigCh, log, func() {
		orch.Stop()
		llm.Close()
		if err := store.Close(); err != nil {
			log.Warn("close trip store", "error", err)
		}
	})
	if err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("stopped")
}

// serve runs httpServer until a signal arrives on stop, then drains it and
// runs cleanup. It returns only after cleanup has finished, so the process
// never exits with jobs or store connections still open.
func serve(httpServer *http.Server, stop <-chan os.Signal, log *slog.Logger, cleanup func()) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-stop
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}
		cleanup()
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (tripstore.Store, error) {
	if cfg.StoreBackend != config.BackendRedis {
		return tripstore.NewMemoryStore(), nil
	}
	rs := tripstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, tripstore.WithTTL(cfg.TripTTL))
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		rs.Close()
		return nil, err
	}
	return rs, nil
}
