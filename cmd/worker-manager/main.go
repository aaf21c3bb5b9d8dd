// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"study-abroad-workers/internal/common/auth"
	"study-abroad-workers/internal/common/camunda"
	"study-abroad-workers/internal/common/config"
	"study-abroad-workers/internal/common/database"
	"study-abroad-workers/internal/common/genai"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/observability"
	"study-abroad-workers/internal/matching"
	"study-abroad-workers/internal/repository"

	// Accounts (3)
	au "study-abroad-workers/internal/workers/auth/authenticate-user"
	lu "study-abroad-workers/internal/workers/auth/login-user"
	ru "study-abroad-workers/internal/workers/auth/register-user"

	// Profile (2)
	gp "study-abroad-workers/internal/workers/profile/get-profile"
	sp "study-abroad-workers/internal/workers/profile/save-profile"

	// University discovery (5)
	cms "study-abroad-workers/internal/workers/university/calculate-match-score"
	cu "study-abroad-workers/internal/workers/university/categorize-university"
	gu "study-abroad-workers/internal/workers/university/get-university"
	rec "study-abroad-workers/internal/workers/university/recommend-universities"
	su "study-abroad-workers/internal/workers/university/search-universities"

	// Shortlist and lock (4)
	ls "study-abroad-workers/internal/workers/shortlist/list-selections"
	lk "study-abroad-workers/internal/workers/shortlist/lock-university"
	sl "study-abroad-workers/internal/workers/shortlist/shortlist-university"
	ul "study-abroad-workers/internal/workers/shortlist/unlock-university"

	// Application (1)
	mt "study-abroad-workers/internal/workers/application/manage-todos"

	// AI counsellor (2)
	ap "study-abroad-workers/internal/workers/counsellor/analyze-profile"
	cc "study-abroad-workers/internal/workers/counsellor/counsellor-chat"
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

// jobTimeout is the handler deadline for taskType: the worker's configured
// timeout, or fallback when none is set.
func jobTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if ms := config.GetWorkerConfig(cfg, taskType).Timeout; ms > 0 {
		return config.GetDuration(ms)
	}
	return fallback
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress, config.GetDuration(cfg.Camunda.RequestTimeout))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if err := repository.EnsureSchema(ctx, pg.DB); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}

	// --- Elasticsearch ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	catalog := repository.NewCatalogIndex(esClient.Client, cfg.Database.Elasticsearch.CatalogIndex)
	if err := catalog.EnsureIndex(ctx); err != nil {
		zapLog.Fatal("catalog index setup failed", zap.Error(err), zap.String("index", catalog.Name()))
	}

	// --- Redis ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Domain services ---
	users := repository.NewUserStore(pg.DB)
	profiles := repository.NewProfileStore(pg.DB, redis.Client, time.Duration(cfg.Database.Redis.ProfileCacheTTL)*time.Second).
		WithLogger(log.WithFields(map[string]interface{}{"component": "profile-cache"}))
	universities := repository.NewUniversityStore(pg.DB)
	selections := repository.NewSelectionStore(pg.DB)
	todos := repository.NewTodoStore(pg.DB)

	engine := matching.NewEngine(cfg.MatchingConfig())

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer,
		time.Duration(cfg.Auth.JWT.AccessTokenExpiry)*time.Minute)
	if err != nil {
		zapLog.Fatal("token issuer setup failed", zap.Error(err))
	}

	// The counsellor workers stay off when no Gemini key is configured;
	// the rest of the journey does not depend on them.
	var counsellor *genai.Counsellor
	if generator, err := genai.NewGeminiGenerator(ctx, cfg.APIs.GenAI.APIKey, ""); err != nil {
		zapLog.Warn("AI counsellor disabled", zap.Error(err))
	} else {
		counsellor = genai.NewCounsellor(genai.Config{
			Model:             cfg.APIs.GenAI.Model,
			FallbackModels:    cfg.APIs.GenAI.FallbackModels,
			RequestsPerMinute: cfg.APIs.GenAI.RequestsPerMinute,
		}, generator, log.WithFields(map[string]interface{}{"component": "counsellor"}))
		zapLog.Info("AI counsellor ready", zap.Strings("models", counsellor.Models()))
	}

	// --- Workers ---
	zc := zeebe.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handler camunda.HandlerFunc) {
		if w := camunda.RegisterWorker(zc, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, zapLog); w != nil {
			workers = append(workers, w)
		}
	}

	// Accounts
	start(ru.TaskType, ru.NewHandler(&ru.Config{Timeout: jobTimeout(cfg, ru.TaskType, 10*time.Second)}, users, log).Handle)
	start(lu.TaskType, lu.NewHandler(&lu.Config{Timeout: jobTimeout(cfg, lu.TaskType, 10*time.Second)}, users, tokens, log).Handle)
	start(au.TaskType, au.NewHandler(&au.Config{Timeout: jobTimeout(cfg, au.TaskType, 5*time.Second)}, users, tokens, log).Handle)

	// Profile
	start(sp.TaskType, sp.NewHandler(&sp.Config{Timeout: jobTimeout(cfg, sp.TaskType, 10*time.Second)}, pg.DB, users, profiles, log).Handle)
	start(gp.TaskType, gp.NewHandler(&gp.Config{Timeout: jobTimeout(cfg, gp.TaskType, 5*time.Second)}, profiles, log).Handle)

	// University discovery
	start(rec.TaskType, rec.NewHandler(&rec.Config{Timeout: jobTimeout(cfg, rec.TaskType, 15*time.Second)},
		engine, users, profiles, universities, log).Handle)
	start(cms.TaskType, cms.NewHandler(&cms.Config{Timeout: jobTimeout(cfg, cms.TaskType, 10*time.Second)},
		engine, users, profiles, universities, log).Handle)
	start(cu.TaskType, cu.NewHandler(&cu.Config{Timeout: jobTimeout(cfg, cu.TaskType, 10*time.Second)},
		engine, users, profiles, universities, log).Handle)
	start(gu.TaskType, gu.NewHandler(&gu.Config{Timeout: jobTimeout(cfg, gu.TaskType, 5*time.Second)}, users, universities, log).Handle)
	start(su.TaskType, su.NewHandler(&su.Config{
		Timeout:      jobTimeout(cfg, su.TaskType, 5*time.Second),
		DefaultLimit: su.LoadConfig().DefaultLimit,
	}, users, catalog, log).Handle)

	// Shortlist and lock
	start(sl.TaskType, sl.NewHandler(&sl.Config{Timeout: jobTimeout(cfg, sl.TaskType, 10*time.Second)},
		users, universities, selections, log).Handle)
	start(lk.TaskType, lk.NewHandler(&lk.Config{Timeout: jobTimeout(cfg, lk.TaskType, 10*time.Second)},
		pg.DB, users, selections, log).Handle)
	start(ul.TaskType, ul.NewHandler(&ul.Config{Timeout: jobTimeout(cfg, ul.TaskType, 10*time.Second)}, users, selections, log).Handle)
	start(ls.TaskType, ls.NewHandler(&ls.Config{Timeout: jobTimeout(cfg, ls.TaskType, 10*time.Second)}, users, selections, log).Handle)

	// Application
	start(mt.TaskType, mt.NewHandler(&mt.Config{Timeout: jobTimeout(cfg, mt.TaskType, 10*time.Second)}, users, todos, log).Handle)

	// AI counsellor
	if counsellor != nil {
		genaiTimeout := config.GetDuration(cfg.APIs.GenAI.Timeout)
		start(cc.TaskType, cc.NewHandler(&cc.Config{
			Timeout:         jobTimeout(cfg, cc.TaskType, genaiTimeout),
			MaxMessageChars: cc.LoadConfig().MaxMessageChars,
		}, counsellor, users, profiles, selections, log).Handle)
		start(ap.TaskType, ap.NewHandler(&ap.Config{Timeout: jobTimeout(cfg, ap.TaskType, genaiTimeout)},
			counsellor, users, profiles, log).Handle)
	}

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.App.HealthAddr,
		Handler:           healthMux(pg, redis, esClient, zeebe),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		w.Close()
	}
	for _, w := range workers {
		w.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthMux serves liveness, readiness and Prometheus metrics. Readiness
// checks every backing store and the Zeebe gateway.
func healthMux(pg, redis, es pinger, zeebe *camunda.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		status := http.StatusOK
		for name, check := range map[string]func(context.Context) error{
			"postgres":      pg.Ping,
			"redis":         redis.Ping,
			"elasticsearch": es.Ping,
			"zeebe":         zeebe.HealthCheck,
		} {
			if err := check(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		writeStatus(w, status, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
