// cmd/worker-manager/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"foresight-workers/internal/catalog"
	"foresight-workers/internal/common/camunda"
	"foresight-workers/internal/common/config"
	"foresight-workers/internal/common/database"
	"foresight-workers/internal/common/logger"
	"foresight-workers/internal/common/observability"
	"foresight-workers/internal/models"
	"foresight-workers/internal/recommendation/llm"
	"foresight-workers/internal/recommendation/orchestrator"

	asp "foresight-workers/internal/workers/foresight/analyze-study-profile"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("catalogSource", cfg.Catalog.Source),
		zap.Bool("llmEnabled", cfg.LLM.Enabled()),
	)

	obs := observability.New(serviceName(cfg))
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Technique catalog ---
	src, closeSource := buildSource(ctx, cfg, log, zapLog)
	defer closeSource()

	var techniques *models.Catalog
	err = retryWithBackoff(func() error {
		var err error
		techniques, err = catalog.Load(ctx, src)
		return err
	}, 5, 2*time.Second, zapLog, "Catalog load")

	if err != nil {
		zapLog.Fatal("catalog load failed after retries", zap.Error(err))
	}
	if techniques.Len() == 0 {
		// Analyses will fail with CATALOG_EMPTY until the catalog is populated.
		zapLog.Warn("technique catalog is empty", zap.String("source", src.Name()))
	} else {
		zapLog.Info("Technique catalog loaded", zap.String("source", src.Name()), zap.Int("techniques", techniques.Len()))
	}

	// --- Recommendation engine ---
	var ai orchestrator.Recommender
	if cfg.LLM.Enabled() {
		ai = llm.NewClient(&llm.Config{
			BaseURL:       cfg.LLM.BaseURL,
			APIKey:        cfg.LLM.APIKey,
			Model:         cfg.LLM.Model,
			Temperature:   cfg.LLM.Temperature,
			MaxTokens:     cfg.LLM.MaxTokens,
			Timeout:       config.GetDuration(cfg.LLM.Timeout),
			MinTechniques: cfg.Engine.MinTechniques,
			MaxTechniques: cfg.Engine.MaxTechniques,
		}, log)
	} else {
		zapLog.Warn("LLM api key not configured, every analysis uses the heuristic path")
	}

	engine := orchestrator.New(&orchestrator.Config{
		LLMTimeout:          config.GetDuration(cfg.LLM.Timeout),
		SimilarityThreshold: cfg.Engine.SimilarityThreshold,
		TopN:                cfg.Engine.TopN,
		CategoryOrder:       cfg.Engine.CategoryOrder,
	}, ai, obs, log)

	// --- Workers ---
	wcfg := config.GetWorkerConfig(cfg, asp.TaskType)
	analyzeHandler := asp.NewHandler(
		&asp.Config{
			Timeout:      config.GetDuration(wcfg.Timeout),
			MaxBodyBytes: 1 << 20,
		},
		engine, techniques, obs, log,
	)
	workers := camunda.NewWorkers(zeebeClient.GetClient(), zapLog)
	workers.Start(asp.TaskType, camunda.WorkerOptions{
		Enabled:       wcfg.Enabled,
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       config.GetDuration(wcfg.Timeout),
	}, analyzeHandler.Handle)

	// --- Health, Metrics & Analysis API ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status, code := "ready", http.StatusOK
		switch {
		case techniques.Len() == 0:
			status, code = "catalog empty", http.StatusServiceUnavailable
		case zeebeClient.HealthCheck(r.Context()) != nil:
			status, code = "zeebe unreachable", http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     status,
			"techniques": techniques.Len(),
			"workers":    workers.Running(),
			"time":       time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/v1/analyses", analyzeHandler)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	workers.Close()
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func serviceName(cfg *config.Config) string {
	if cfg.App.Name != "" {
		return cfg.App.Name
	}
	return "worker-manager"
}

// buildSource picks the catalog backend and wraps it in the Redis snapshot
// cache when catalog.cache_ttl is set. The returned func closes connections.
func buildSource(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) (catalog.Source, func()) {
	var (
		src     catalog.Source
		closers []func()
	)

	switch cfg.Catalog.Source {
	case "file":
		src = catalog.NewFileSource(cfg.Catalog.FilePath)
	default:
		var pg *sql.DB
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(ctx, cfg.Database.Postgres)
			return err
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		zapLog.Info("PostgreSQL connected successfully")
		closers = append(closers, func() { pg.Close() })
		src = catalog.NewPostgresSource(pg, log)
	}

	if cfg.Catalog.CacheTTL > 0 {
		var rdb *redis.Client
		err := retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(ctx, cfg.Database.Redis)
			return err
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			// The snapshot is an optimisation; load straight from the source.
			zapLog.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			zapLog.Info("Redis connected successfully")
			closers = append(closers, func() { rdb.Close() })
			src = catalog.NewCachedSource(src, rdb, time.Duration(cfg.Catalog.CacheTTL)*time.Second, log)
		}
	}

	return src, func() {
		for _, c := range closers {
			c()
		}
	}
}
