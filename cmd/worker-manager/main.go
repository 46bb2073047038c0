// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recommendation-workers/internal/common/camunda"
	"recommendation-workers/internal/common/config"
	"recommendation-workers/internal/common/database"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/observability"
	"recommendation-workers/internal/recommend"
	"recommendation-workers/internal/store"
	"recommendation-workers/pkg/registry"

	// Catalog Workers (1)
	sp "recommendation-workers/internal/workers/catalog/search-products"

	// Recommendation Workers (4)
	cms "recommendation-workers/internal/workers/recommendation/calculate-match-score"
	eup "recommendation-workers/internal/workers/recommendation/ensure-user-profile"
	gr "recommendation-workers/internal/workers/recommendation/generate-recommendations"
	sf "recommendation-workers/internal/workers/recommendation/save-feedback"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	// Bootstrap logger until the config is loaded.
	zapLog := logger.New("info", "console", "stdout")

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Build Recommendation Stack ---
	keywords := recommend.DefaultKeywords()
	if path := cfg.Recommendation.RegistryPath; path != "" {
		loaded, err := registry.LoadRegistry(path)
		if err != nil {
			zapLog.Fatal("keyword registry load failed", zap.Error(err), zap.String("path", path))
		}
		keywords = loaded
		zapLog.Info("Keyword registry loaded",
			zap.String("path", path),
			zap.String("version", loaded.Version),
		)
	}
	scorer := recommend.NewScorer(keywords)

	presetOverrides := make(map[string]recommend.PresetOverride, len(cfg.Recommendation.Presets))
	for name, o := range cfg.Recommendation.Presets {
		presetOverrides[name] = recommend.PresetOverride{MinScore: o.MinScore, Limit: o.Limit}
	}

	cacheTTL := time.Duration(cfg.Recommendation.CacheTTL) * time.Millisecond
	db := store.New(pg.DB, redis.Client, cacheTTL, log)
	productSearch := store.NewProductSearch(esClient.Client, cfg.Search.Index, log)
	engine := recommend.NewEngine(db, scorer, log)

	zapLog.Info("Recommendation stack initialized",
		zap.String("defaultPreset", cfg.Recommendation.DefaultPreset),
		zap.Duration("profileCacheTTL", cacheTTL),
	)

	// --- Register Workers ---
	var workers []*camunda.Worker

	// --- 1. Recommendation Workers (4) ---
	if cfg.Workers[gr.TaskType].Enabled {
		handler := gr.NewHandler(
			&gr.Config{
				Timeout:         time.Duration(cfg.Workers[gr.TaskType].Timeout) * time.Millisecond,
				DefaultPreset:   cfg.Recommendation.DefaultPreset,
				PresetOverrides: presetOverrides,
			},
			db, engine, log,
		)
		workers = append(workers, startWorker(zeebeClient, gr.TaskType, cfg.Workers[gr.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[cms.TaskType].Enabled {
		handler := cms.NewHandler(
			&cms.Config{
				Timeout:         time.Duration(cfg.Workers[cms.TaskType].Timeout) * time.Millisecond,
				DefaultPreset:   cfg.Recommendation.DefaultPreset,
				PresetOverrides: presetOverrides,
			},
			db, db, scorer, log,
		)
		workers = append(workers, startWorker(zeebeClient, cms.TaskType, cfg.Workers[cms.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[eup.TaskType].Enabled {
		handler := eup.NewHandler(
			&eup.Config{
				Timeout: time.Duration(cfg.Workers[eup.TaskType].Timeout) * time.Millisecond,
			},
			db, log,
		)
		workers = append(workers, startWorker(zeebeClient, eup.TaskType, cfg.Workers[eup.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[sf.TaskType].Enabled {
		handler := sf.NewHandler(
			&sf.Config{
				Timeout: time.Duration(cfg.Workers[sf.TaskType].Timeout) * time.Millisecond,
			},
			db, log,
		)
		workers = append(workers, startWorker(zeebeClient, sf.TaskType, cfg.Workers[sf.TaskType], handler.Handle, zapLog))
	}

	// --- 2. Catalog Workers (1) ---
	if cfg.Workers[sp.TaskType].Enabled {
		handler := sp.NewHandler(
			&sp.Config{
				Timeout:    time.Duration(cfg.Search.Timeout) * time.Millisecond,
				MaxResults: cfg.Search.MaxResults,
			},
			productSearch, log,
		)
		workers = append(workers, startWorker(zeebeClient, sp.TaskType, cfg.Workers[sp.TaskType], handler.Handle, zapLog))
	}

	zapLog.Info("All 5 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		if w != nil {
			w.Stop()
		}
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) *camunda.Worker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	return camunda.NewWorker(
		client,
		taskType,
		wcfg.MaxJobsActive,
		time.Duration(wcfg.Timeout)*time.Millisecond,
		handlerFunc,
		log,
	)
}
