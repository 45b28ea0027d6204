// Package main provides the Kakao skill server entry point.
package main

import (
	"context"
	"time"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/config"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/logger"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/neis"
)

// sweepNeisCache periodically removes expired NEIS response cache entries.
// Lookups already skip expired entries; the sweep just bounds memory use.
func sweepNeisCache(ctx context.Context, client *neis.Client, log *logger.Logger) {
	ticker := time.NewTicker(config.CacheSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := client.Cache().Sweep()
			if removed > 0 {
				log.WithField("removed", removed).
					WithField("remaining", client.Cache().Len()).
					Debug("NEIS cache sweep complete")
			}
		}
	}
}
