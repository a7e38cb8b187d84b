package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/atlas/internal/alert"
	"github.com/kailas-cloud/atlas/internal/config"
	dbRedis "github.com/kailas-cloud/atlas/internal/db/redis"
	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/tenant"
	logpkg "github.com/kailas-cloud/atlas/internal/logger"
	"github.com/kailas-cloud/atlas/internal/metrics"
	candidaterepo "github.com/kailas-cloud/atlas/internal/repository/candidate"
	knowledgerepo "github.com/kailas-cloud/atlas/internal/repository/knowledge"
	tenantrepo "github.com/kailas-cloud/atlas/internal/repository/tenantconfig"
	chiTransport "github.com/kailas-cloud/atlas/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/atlas/internal/transport/openai"
	answeruc "github.com/kailas-cloud/atlas/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/atlas/internal/usecase/health"
	"github.com/kailas-cloud/atlas/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting atlas API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// rueidis speaks to both valkey and redis
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Ensure FT indexes exist before serving; the indexer normally
	// creates them, but a fresh store must not 500 every query
	factWriter := knowledgerepo.NewWriter(store, cfg.Embedding.Dimensions).
		WithHNSW(cfg.Index.HNSWM, cfg.Index.HNSWEFConstruct)
	if err := factWriter.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure fact index", zap.Error(err))
	}
	if err := candidaterepo.NewWriter(store).EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure business index", zap.Error(err))
	}

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Query embedder — instruction prefix is outermost so the stored
	// vectors (embedded without it) stay comparable
	var queryEmbedder domain.Embedder = openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	if cfg.Embedding.QueryInstruction != "" {
		queryEmbedder = domain.NewInstructionEmbedder(queryEmbedder, cfg.Embedding.QueryInstruction)
	}
	logger.Info("Query embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Language model is optional: without it the pipeline still answers,
	// every query just resolves to the model-unavailable fallback.
	// Pass nil interface (not typed nil pointer!) when not configured.
	var model answeruc.LanguageModel
	var modelChecker healthuc.ModelChecker
	if cfg.LLM.APIKey != "" {
		llm := openaiTransport.NewLLM(&openaiTransport.LLMConfig{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Logger:      logger,
		})
		model = llm
		modelChecker = llm
		logger.Info("Language model created", zap.String("model", cfg.LLM.Model))
	} else {
		logger.Warn("No language model configured, serving fallbacks only")
	}

	// Repositories
	tenantDefaults := tenant.New(cfg.Tenants.DefaultMinRating, cfg.Tenants.DefaultMaxResults)
	knowledgeRepo := knowledgerepo.New(store, queryEmbedder)
	candidateRepo := candidaterepo.New(store)
	tenantRepo := tenantrepo.New(store, tenantDefaults)

	// Use case services
	answerSvc := answeruc.New(
		knowledgeRepo,
		candidateRepo,
		tenantRepo,
		model,
		alert.NewLeakAlerter(logger),
		logger,
	)
	healthSvc := healthuc.New(store, modelChecker)

	server := chiTransport.NewServer(answerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.Keys))
	r.Use(metrics.Middleware())

	r.Post("/v1/query", server.HandleQuery)
	r.Get("/health", server.HandleHealth)
	r.Handle("/metrics", chiTransport.MetricsHandler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
