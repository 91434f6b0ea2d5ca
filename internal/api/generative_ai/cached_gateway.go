package generativeAI

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
)

var _ Gateway = (*CachedGateway)(nil)

// CachedGateway memoises successful generations by prompt. Failure markers are never stored.
type CachedGateway struct {
	next    Gateway
	cache   *cache.Cache
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewCachedGateway(next Gateway, ttl time.Duration, logger *slog.Logger, m *metrics.AppMetrics) *CachedGateway {
	return &CachedGateway{
		next:    next,
		cache:   cache.New(ttl, 2*ttl),
		logger:  logger,
		metrics: m,
	}
}

func (c *CachedGateway) Generate(ctx context.Context, systemPrompt, userPrompt string) string {
	key := promptCacheKey(systemPrompt, userPrompt)
	if cached, found := c.cache.Get(key); found {
		c.logger.DebugContext(ctx, "Text generation served from cache")
		c.metrics.RecordCacheHit(ctx)
		return cached.(string)
	}

	text := c.next.Generate(ctx, systemPrompt, userPrompt)
	if !IsFailure(text) {
		c.cache.Set(key, text, cache.DefaultExpiration)
	}
	return text
}

func promptCacheKey(systemPrompt, userPrompt string) string {
	h := sha256.New()
	h.Write([]byte(systemPrompt))
	h.Write([]byte{0})
	h.Write([]byte(userPrompt))
	return hex.EncodeToString(h.Sum(nil))
}
