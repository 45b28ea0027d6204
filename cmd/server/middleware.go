// Package main provides the Kakao skill server entry point.
package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/logger"
)

// hardeningHeaders are attached to every response. The service only
// serves JSON, so the browser-facing ones cost nothing to carry.
var hardeningHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "strict-origin-when-cross-origin",
	"Permissions-Policy":      "geolocation=(), microphone=(), camera=()",
	"Content-Security-Policy": "default-src 'self'",
}

func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, value := range hardeningHeaders {
			c.Header(name, value)
		}
		c.Next()
	}
}

// loggingMiddleware writes one structured line per request, leveled by
// the response status.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		entry := log.WithField("method", method).
			WithField("path", path).
			WithField("status", status).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("ip", c.ClientIP())

		switch {
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Error("request completed with errors")
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request completed with client error")
		default:
			entry.Debug("request completed")
		}
	}
}
