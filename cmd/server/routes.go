// Package main provides the Kakao skill server entry point.
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/config"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/dataset"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/neis"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, webhookHandler *webhook.Handler, neisClient *neis.Client, store *dataset.Store, registry *prometheus.Registry, cfg *config.Config) {
	// Root endpoint - redirect to the project page
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/yunseo-dev/neis-kakaobot-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	readyHandler := func(c *gin.Context) {
		// Check NEIS hub reachability (HEAD on the base URL, quick check)
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		neisAvailable := false
		req, _ := http.NewRequestWithContext(checkCtx, http.MethodHead, cfg.NeisBaseURL, http.NoBody)
		if resp, err := http.DefaultClient.Do(req); err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 500 {
				neisAvailable = true
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        "ready",
			"neis":          neisAvailable,
			"cache_entries": neisClient.Cache().Len(),
			"datasets":      store.Counts(),
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Kakao skill webhook endpoint
	router.POST("/kakao", webhookHandler.Handle)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
