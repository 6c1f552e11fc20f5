// cmd/intake/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"leme-intake/internal/common/config"
	"leme-intake/internal/common/logger"
	"leme-intake/internal/common/observability"
	"leme-intake/internal/common/scoring"
	"leme-intake/internal/common/storage"
	"leme-intake/internal/wizard/analysis"
	"leme-intake/internal/wizard/preopening"
	"leme-intake/internal/wizard/session"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake engine...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("intake")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init durable client storage ---
	// Session correlation is advisory, so a broken Redis degrades to the
	// in-memory store instead of refusing to start.
	var store storage.DurableStore
	if cfg.Storage.Backend == "redis" {
		redisStore := storage.NewRedisStore(cfg.Storage.Redis)
		err = retryWithBackoff(func() error {
			return redisStore.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Warn("redis unavailable, falling back to in-memory storage", zap.Error(err))
			store = storage.NewMemoryStore()
		} else {
			defer redisStore.Close()
			store = redisStore
			zapLog.Info("Redis connected successfully")
		}
	} else {
		store = storage.NewMemoryStore()
	}

	// --- Init scoring service client ---
	client := scoring.NewClient(cfg.API.BaseURL, config.GetDuration(cfg.API.Timeout))
	zapLog.Info("Scoring client initialized", zap.String("baseURL", cfg.API.BaseURL))

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
			})
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Build the requested wizard ---
	flow := "analise"
	if len(os.Args) > 1 {
		flow = os.Args[1]
	}

	runner := newRunner(os.Stdin, os.Stdout)

	switch flow {
	case "analise":
		if !config.GetWizardConfig(cfg, "analise").Enabled {
			zapLog.Fatal("analysis wizard is disabled in configuration")
		}
		correlator := session.NewCorrelator(client, store, log, config.GetDuration(cfg.API.SessionTimeout), "analise")
		correlator.Resume(ctx)
		service := analysis.NewService(client, correlator, obs, log)
		wizard := analysis.NewWizard(service, correlator, log, time.Now())
		runner.runAnalysis(ctx, wizard)
	case "pre-abertura":
		if !config.GetWizardConfig(cfg, "pre_abertura").Enabled {
			zapLog.Fatal("pre-opening wizard is disabled in configuration")
		}
		service := preopening.NewService(client, obs, log)
		wizard := preopening.NewWizard(service, log, time.Now)
		runner.runPreOpening(ctx, wizard)
	default:
		zapLog.Fatal("unknown flow, use 'analise' or 'pre-abertura'", zap.String("flow", flow))
	}

	zapLog.Info("Intake engine finished")
}
