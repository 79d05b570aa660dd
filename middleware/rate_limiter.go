// middleware/rate_limiter.go

package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/config"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

// ClientID identifies the caller by the configured header, or "unknown".
func ClientID(c *gin.Context, header string) string {
	if header == "" {
		return "unknown"
	}
	if v := strings.TrimSpace(c.GetHeader(header)); v != "" {
		return v
	}
	return "unknown"
}

// RateLimiter admits at most the bucket's limit of requests per client and window.
// Unknown buckets fall back to "general".
func RateLimiter(limiter *util.RateLimiter, cfg config.RateLimitConfiguration, bucket string) gin.HandlerFunc {
	b, ok := cfg.Buckets[bucket]
	if !ok {
		logger.Warn("Unknown rate limit bucket, using general", zap.String("bucket", bucket))
		bucket = "general"
		b = cfg.Buckets[bucket]
	}

	return func(c *gin.Context) {
		client := ClientID(c, cfg.ClientIPHeader)
		decision, err := limiter.Check(c.Request.Context(), bucket, client, b.Limit, b.Window)
		if err != nil {
			if cfg.FailOpen {
				logger.Warn("Rate limiting unavailable, allowing request",
					zap.Error(err), zap.String("bucket", bucket), zap.String("client", client))
				c.Next()
				return
			}
			util.RespondWithError(c, http.StatusInternalServerError, "Rate limiting failed", err)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(b.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining(), 10))
		c.Header("X-RateLimit-Window", b.Window.String())

		if !decision.Allowed {
			rateLimitRejects.WithLabelValues(bucket).Inc()
			logger.Warn("Rate limit exceeded",
				zap.String("bucket", bucket),
				zap.String("client", client),
				zap.Int("limit", b.Limit),
				zap.Duration("window", b.Window),
				zap.Duration("retry_after", decision.RetryAfter))
			c.Header("Retry-After", strconv.Itoa(decision.RetryAfterSeconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.Response{Success: false, Error: "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}
