// Package main provides the Kakao skill server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/buildinfo"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/config"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/dataset"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/logger"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/metrics"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/neis"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/ratelimit"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/sentry"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/skill"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterstackToken: cfg.BetterstackToken,
	})
	log.WithField("version", buildinfo.Version).Info("Starting NEIS KakaoBot Server")

	// Initialize error tracking (no-op without a token)
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: getEnvironment(),
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	} else if sentry.IsEnabled() {
		log.Info("Error tracking enabled")
	}
	defer sentry.Flush(2 * time.Second)

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Register Go and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Create NEIS client with response caching
	neisClient := neis.New(neis.Options{
		BaseURL:           cfg.NeisBaseURL,
		APIKey:            cfg.NeisAPIKey,
		OfficeCode:        cfg.EducationOffice,
		SchoolCode:        cfg.SchoolCode,
		TimetableEndpoint: cfg.TimetableEndpoint,
		MaxRetries:        cfg.FetchMaxRetries,
		CacheTTL:          cfg.CacheTTL,
		HTTPClient: &http.Client{
			Timeout: cfg.FetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Logger:  log,
		Metrics: m,
	})
	log.WithField("cache_ttl", cfg.CacheTTL).
		WithField("timetable_endpoint", cfg.TimetableEndpoint).
		Info("NEIS client created")

	// Load static school datasets (assessments, exam schedules, D-days)
	store, err := dataset.Load(cfg.DataDir, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load data files")
	}
	log.WithFields(toAnyMap(store.Counts())).Info("Datasets loaded")

	// Register capability handlers
	reg := skill.NewRegistry()
	reg.Register(skill.NewMealHandler(neisClient))
	reg.Register(skill.NewTimetableHandler(neisClient, cfg.DefaultGrade, cfg.DefaultClass))
	reg.Register(skill.NewScheduleHandler(neisClient))
	reg.Register(skill.NewAssessmentHandler(store))
	reg.Register(skill.NewDdayHandler(store))
	reg.Register(skill.NewExamHandler(neisClient, store))
	reg.Register(skill.NewHelpHandler())

	processor := skill.NewProcessor(skill.ProcessorConfig{
		Registry: reg,
		Logger:   log,
		Metrics:  m,
	})

	// Per-user throttling for the webhook
	var userLimiter *ratelimit.PerUser
	if cfg.UserRateLimitBurst > 0 {
		userLimiter = ratelimit.NewPerUser(ratelimit.PerUserConfig{
			Burst:      float64(cfg.UserRateLimitBurst),
			RefillRate: 1 / cfg.UserRateLimitInterval.Seconds(),
			OnDrop:     func() { m.RecordHTTPError("rate_limited") },
		})
		defer userLimiter.Stop()
		log.WithField("burst", cfg.UserRateLimitBurst).
			WithField("interval", cfg.UserRateLimitInterval).
			Info("Per-user rate limiting enabled")
	}

	// Create webhook handler
	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		Secret:    cfg.SkillSecret,
		Processor: processor,
		Limiter:   userLimiter,
		Logger:    log,
		Metrics:   m,
	})
	if cfg.SkillSecret == "" {
		log.Warn("KAKAO_SKILL_SECRET not set, signature verification disabled")
	}
	log.Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Add middleware
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	// Setup routes
	setupRoutes(router, webhookHandler, neisClient, store, registry, cfg)

	// Create HTTP server with timeouts sized for the Kakao skill deadline
	// See internal/config/timeouts.go for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.WebhookHTTPRead,
		WriteTimeout: config.WebhookHTTPWrite,
		IdleTimeout:  config.WebhookHTTPIdle,
	}

	// Start background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	// Cache sweep goroutine (every 5 minutes)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in cache sweep goroutine")
			}
		}()
		sweepNeisCache(ctx, neisClient, log)
	}()

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Cancel context to stop background goroutines
	cancel()

	// Wait for goroutines to finish (with timeout)
	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}

// getEnvironment reports the deployment environment for error tracking.
func getEnvironment() string {
	if env := os.Getenv("GO_ENV"); env != "" {
		return env
	}
	return "production"
}

func toAnyMap(counts map[string]int) map[string]any {
	fields := make(map[string]any, len(counts))
	for k, v := range counts {
		fields[k] = v
	}
	return fields
}
