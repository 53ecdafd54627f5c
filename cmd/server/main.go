package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"onyx/internal/audit"
	"onyx/internal/kyb"
	kybhandler "onyx/internal/kyb/handler"
	kybmetrics "onyx/internal/kyb/metrics"
	kybstore "onyx/internal/kyb/store"
	"onyx/internal/llm"
	"onyx/internal/platform/config"
	"onyx/internal/platform/httpserver"
	"onyx/internal/platform/logger"
	"onyx/internal/platform/middleware"
	"onyx/internal/registry"
	registryhandler "onyx/internal/registry/handler"
	registrystore "onyx/internal/registry/store"
	"onyx/internal/trust"
	trusthandler "onyx/internal/trust/handler"
	trustmetrics "onyx/internal/trust/metrics"
	"onyx/pkg/platform/httputil"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Audit publisher. Envelopes are always returned inline; Kafka forwarding
	// is on only when brokers are configured.
	var publisher audit.Publisher
	if cfg.KafkaEnabled() {
		kafkaPublisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("kafka publisher init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("audit events forwarded to kafka", "topic", cfg.KafkaTopic)
	}

	// Verdict recall store. Redis when configured, in-process otherwise.
	verdictTTL := time.Duration(cfg.VerdictTTLSeconds) * time.Second
	var verdictStore kyb.VerdictStore = kybstore.NewMemory(verdictTTL)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		verdictStore = kybstore.NewRedis(redisClient, verdictTTL)
		log.Info("verdict store backed by redis", "addr", cfg.RedisAddr)
	}

	kybService := kyb.NewService(
		kyb.WithLogger(log),
		kyb.WithMetrics(kybmetrics.New()),
		kyb.WithVerdictStore(verdictStore),
		kyb.WithAuditPublisher(publisher),
	)

	trustOpts := []trust.Option{
		trust.WithLogger(log),
		trust.WithMetrics(trustmetrics.New()),
		trust.WithAuditPublisher(publisher),
	}
	if cfg.LLMConfigured() {
		explainer := llm.NewTrustExplainer(llm.Config{
			Endpoint:   cfg.LLMEndpoint,
			APIKey:     cfg.LLMAPIKey,
			Deployment: cfg.LLMDeployment,
		}, llm.WithLogger(log))
		trustOpts = append(trustOpts, trust.WithExplainer(explainer))
	}
	trustService := trust.NewService(trustOpts...)

	// Provider registry. Postgres when configured, in-memory otherwise.
	registryOpts := []registry.Option{
		registry.WithLogger(log),
		registry.WithConfigPath(cfg.RegistryConfigPath),
	}
	if cfg.DatabaseURL != "" {
		pgStore, err := registrystore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("registry postgres init failed", "error", err)
			os.Exit(1)
		}
		defer pgStore.Close()
		registryOpts = append(registryOpts, registry.WithStore(pgStore))
		log.Info("registry backed by postgres")
	}
	registryService, err := registry.NewService(ctx, registryOpts...)
	if err != nil {
		log.Error("registry init failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestMeta)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"ok":   true,
			"repo": "onyx",
		})
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	kybhandler.New(kybService, log).Register(router)
	trusthandler.New(trustService, log).Register(router)
	registryhandler.New(registryService, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting onyx", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
