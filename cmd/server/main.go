package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/socialchef/cookmate/internal/api"
	"github.com/socialchef/cookmate/internal/config"
	"github.com/socialchef/cookmate/internal/controller"
	"github.com/socialchef/cookmate/internal/logger"
	"github.com/socialchef/cookmate/internal/metrics"
	"github.com/socialchef/cookmate/internal/middleware"
	"github.com/socialchef/cookmate/internal/sentry"
	"github.com/socialchef/cookmate/internal/services/generation"
	"github.com/socialchef/cookmate/internal/services/recipe"
	"github.com/socialchef/cookmate/internal/session"
	"github.com/socialchef/cookmate/internal/telemetry"
	"github.com/socialchef/cookmate/internal/theme"
	"github.com/socialchef/cookmate/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	}
	if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	slog.SetDefault(logger.New(cfg.Env))

	// Theme preference
	var redisClient *redis.Client
	if cfg.ThemeStore == "redis" {
		redisClient, err = theme.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to create Redis client: %v", err)
		}
		defer redisClient.Close()
	}
	store, err := theme.NewStore(cfg.ThemeStore, cfg.ThemeFile, redisClient)
	if err != nil {
		log.Fatalf("Failed to create theme store: %v", err)
	}
	setting := theme.Load(ctx, store, cfg.SystemTheme)

	// Generation providers
	gemini, err := generation.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Generation.TextModel, cfg.Generation.ImageModel)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	adapter := recipe.NewAdapter(
		generation.NewTextGenerator(cfg, gemini),
		gemini,
		recipe.WithImageConcurrency(cfg.Generation.ImageConcurrency),
		recipe.WithImageRate(cfg.Generation.ImageRatePerSecond),
	)

	sessions := session.NewStore(cfg.SessionTTL, cfg.SessionTTL/2, func() *controller.Controller {
		return controller.New(adapter, setting)
	})

	secret := cfg.SessionSecret
	if secret == "" {
		slog.Warn("SESSION_SECRET not set, sessions will not survive a restart")
		secret = uuid.NewString() + uuid.NewString()
	}
	tokens := middleware.NewSessionTokens(secret, cfg.ServiceName, cfg.SessionTTL)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	apiServer := api.NewServer(sessions, setting, renderer)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg.ServiceName, apiServer, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "theme", setting.Current(), "fallback", cfg.Generation.FallbackEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	sessions.Close()
}
