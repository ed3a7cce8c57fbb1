package v1

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/daddeck/daddeck-api/internal/config"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/orchestrators/auth"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	"github.com/daddeck/daddeck-api/internal/redis"
)

const (
	requestIDKey = "requestID"
	apiKeyKey    = "apiKey"

	rateLimitKeyPrefix = "ratelimit:"
)

// RequestID assigns each request a UUID surfaced in the response envelope
// and the X-Request-Id header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger emits one structured log line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", requestIDFrom(c),
		)
	}
}

// Auth validates the Bearer API key on every request and stores the
// resolved key record on the context.
func Auth(service auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(c, errors.Unauthenticated("missing bearer token"))
			return
		}

		out, err := service.Authenticate(c.Request.Context(), &auth.AuthenticateInput{Key: token})
		if err != nil {
			respondError(c, err)
			return
		}

		// Origin-locked keys reject browser callers from elsewhere.
		// Non-browser callers send no Origin header and pass.
		if origin := c.GetHeader("Origin"); origin != "" && !out.APIKey.AllowsOrigin(origin) {
			respondError(c, errors.PermissionDeniedf("origin %s is not allowed for this key", origin))
			return
		}

		c.Set(apiKeyKey, out.APIKey)
		c.Next()
	}
}

func apiKeyFrom(c *gin.Context) *entities.APIKey {
	v, ok := c.Get(apiKeyKey)
	if !ok {
		return nil
	}
	key, ok := v.(*entities.APIKey)
	if !ok {
		return nil
	}
	return key
}

// RateLimiterConfig holds the dependencies for the rate limit middleware
type RateLimiterConfig struct {
	Client redis.Client
	Limits *config.RateLimitConfig
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RateLimiterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Limits == nil {
		vb.RequiredField("Limits")
	}

	return vb.Build()
}

// RateLimiter enforces a fixed-window request budget per API key. Requests
// without a key share a per-address budget at the free tier.
func RateLimiter(cfg *RateLimiterConfig) (gin.HandlerFunc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	window := cfg.Limits.Window()
	windowSecs := int64(cfg.Limits.WindowSeconds)

	return func(c *gin.Context) {
		tier := entities.TierFree
		subject := "ip:" + c.ClientIP()
		if key := apiKeyFrom(c); key != nil {
			tier = key.Tier
			subject = "key:" + key.ID
		}

		limit := cfg.Limits.LimitFor(tier)
		now := clk.Now().Unix()
		bucket := now / windowSecs
		resetAt := (bucket + 1) * windowSecs

		ctx := c.Request.Context()
		redisKey := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, subject, bucket)

		count, err := cfg.Client.Incr(ctx, redisKey).Result()
		if err != nil {
			// The limiter never takes the API down with it
			slog.WarnContext(ctx, "rate limit counter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			// Extra second so the key outlives its window boundary
			cfg.Client.Expire(ctx, redisKey, window+time.Second)
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))
		c.Header("X-RateLimit-Tier", string(tier))

		if count > limit {
			respondError(c, errors.ResourceExhaustedf(
				"rate limit of %d requests per %s exceeded", limit, window))
			return
		}

		c.Next()
	}, nil
}
