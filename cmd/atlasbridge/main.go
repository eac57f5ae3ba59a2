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

	"github.com/netfacet/atlasbridge/internal/config"
	"github.com/netfacet/atlasbridge/internal/db"
	dbMemory "github.com/netfacet/atlasbridge/internal/db/memory"
	dbRedis "github.com/netfacet/atlasbridge/internal/db/redis"
	"github.com/netfacet/atlasbridge/internal/domain/query"
	logpkg "github.com/netfacet/atlasbridge/internal/logger"
	"github.com/netfacet/atlasbridge/internal/metrics"
	relatedrepo "github.com/netfacet/atlasbridge/internal/repository/related"
	chiTransport "github.com/netfacet/atlasbridge/internal/transport/chi"
	"github.com/netfacet/atlasbridge/internal/transport/confluenceclient"
	"github.com/netfacet/atlasbridge/internal/transport/jiraclient"
	connectionuc "github.com/netfacet/atlasbridge/internal/usecase/connection"
	healthuc "github.com/netfacet/atlasbridge/internal/usecase/health"
	relateduc "github.com/netfacet/atlasbridge/internal/usecase/related"
	"github.com/netfacet/atlasbridge/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting atlasbridge API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Bool("jira_configured", cfg.Backends.Jira.URL != ""),
		zap.Bool("confluence_configured", cfg.Backends.Confluence.URL != ""),
	)

	// Create cache store based on driver
	var store db.Store
	switch cfg.Cache.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Cache.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the cache to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache store not ready", zap.Error(err))
	}
	logger.Info("Connected to cache store")

	// Register backend metrics explicitly (no init())
	metrics.RegisterBackendMetrics()

	backendTimeout := time.Duration(cfg.Backends.TimeoutSec) * time.Second

	jiraClient, err := jiraclient.New(jiraclient.Config{
		BaseURL:   cfg.Backends.Jira.URL,
		Username:  cfg.Backends.Jira.Username,
		Password:  cfg.Backends.Jira.Password,
		Token:     cfg.Backends.Jira.Token,
		VerifySSL: !cfg.Backends.Jira.TLSSkipVerify,
		LegacyTLS: cfg.Backends.Jira.LegacyTLS,
		Timeout:   backendTimeout,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("Failed to create Jira client", zap.Error(err))
	}

	confluenceClient := confluenceclient.New(confluenceclient.Config{
		BaseURL:   cfg.Backends.Confluence.URL,
		Username:  cfg.Backends.Confluence.Username,
		Password:  cfg.Backends.Confluence.Password,
		Token:     cfg.Backends.Confluence.Token,
		VerifySSL: !cfg.Backends.Confluence.TLSSkipVerify,
		LegacyTLS: cfg.Backends.Confluence.LegacyTLS,
		Timeout:   backendTimeout,
		Logger:    logger,
	})

	// Create repositories (cached, error-softening)
	cacheTTL := cfg.Cache.TTL()
	issueRepo := relatedrepo.NewIssueRepo(jiraClient, store, cacheTTL, logger)
	pageRepo := relatedrepo.NewPageRepo(confluenceClient, store, cacheTTL, logger)

	// Create use case services
	relatedSvc := relateduc.New(issueRepo, pageRepo, relateduc.Options{
		DeviceRules:       cfg.Search.DeviceFields,
		VMRules:           cfg.Search.VMFields,
		DeviceTypeFilters: cfg.Search.DeviceTypeFilters,
		Jira: query.JQLRestrictions{
			Projects:   cfg.Backends.Jira.Projects,
			IssueTypes: cfg.Backends.Jira.IssueTypes,
		},
		JiraMax: cfg.Backends.Jira.MaxResults,
		Confluence: query.CQLRestrictions{
			Spaces: cfg.Backends.Confluence.Spaces,
		},
		ConfluenceMax: cfg.Backends.Confluence.MaxResults,
	})
	connectionSvc := connectionuc.New(jiraClient, confluenceClient, logger)
	healthSvc := healthuc.New(store)

	// Create chi server
	server := chiTransport.NewServer(relatedSvc, connectionSvc, healthSvc, settingsView(cfg), logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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

// settingsView builds the sanitized settings payload. Credentials stay
// out of it.
func settingsView(cfg config.Config) chiTransport.SettingsView {
	return chiTransport.SettingsView{
		Jira: chiTransport.BackendView{
			URL:        cfg.Backends.Jira.URL,
			Configured: cfg.Backends.Jira.URL != "",
			MaxResults: cfg.Backends.Jira.MaxResults,
			Projects:   cfg.Backends.Jira.Projects,
			IssueTypes: cfg.Backends.Jira.IssueTypes,
		},
		Confluence: chiTransport.BackendView{
			URL:        cfg.Backends.Confluence.URL,
			Configured: cfg.Backends.Confluence.URL != "",
			MaxResults: cfg.Backends.Confluence.MaxResults,
			Spaces:     cfg.Backends.Confluence.Spaces,
		},
		Cache: chiTransport.CacheView{
			Driver: cfg.Cache.Driver,
			TTLSec: int(cfg.Cache.TTL() / time.Second),
		},
		Search: chiTransport.SearchView{
			DeviceFields:      cfg.Search.DeviceFields,
			VMFields:          cfg.Search.VMFields,
			DeviceTypeFilters: cfg.Search.DeviceTypeFilters,
		},
		Version: version.Version,
	}
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

			// Canonical log line, one per request
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
