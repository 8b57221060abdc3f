package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/clients/daos"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/config"
	redisindex "github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/replyindex/redis"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/service"
	dsmongo "github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/storage/mongo"
	dshttp "github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/transport/http"
)

// Константы окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting discussions-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	mongoStore, err := dsmongo.New(dbCtx, cfg)
	dbCancel()
	if err != nil {
		log.Error("mongo_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("mongo_connected")

	index, err := redisindex.New(cfg.Redis.URL, cfg.Redis.Prefix)
	if err != nil {
		log.Error("redis_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		_ = mongoStore.Close(context.Background())
		os.Exit(1)
	}
	log.Info("redis_connected")

	daosClient, err := daos.NewHTTP(cfg.DAOS.URL, cfg.DAOS.Timeout)
	if err != nil {
		log.Error("daos_client_init_failed", slog.String("err", err.Error()))
		rootCancel()
		_ = index.Close()
		_ = mongoStore.Close(context.Background())
		os.Exit(1)
	}

	svc := service.New(mongoStore, index, daosClient, *cfg)
	log.Info("service_initialized")

	// HTTP readiness/liveness/metrics
	var ready int32 // 0 — not ready; 1 — ready
	probesAddr := cfg.Probes.Addr()

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.Handler())

	probesSrv := &http.Server{
		Addr:              probesAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("probes_listen_start", "addr", probesAddr)
		if err := probesSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("probes_serve_failed", slog.String("err", err.Error()))
		}
	}()

	apiAddr := cfg.HTTP.Addr()
	apiSrv := &http.Server{
		Addr: apiAddr,
		Handler: dshttp.NewRouter(svc, dshttp.Options{
			Logger:  log,
			Timeout: cfg.Timeouts.Service,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	atomic.StoreInt32(&ready, 1)

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", slog.String("addr", apiAddr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = apiSrv.Close()
	}
	shutdownCancel()

	_ = probesSrv.Shutdown(context.Background())

	rootCancel()
	_ = index.Close()
	_ = mongoStore.Close(context.Background())

	log.Info("service_stopped")
	os.Exit(0)
}

// setupLogger — текстовый handler локально, JSON в dev/prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
