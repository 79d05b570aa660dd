// util/rate_limiter.go

package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/blog-api/logging"
)

// fixedWindow admits a request when the counter is below the limit, then
// increments it and restarts the window. Rejections leave the counter alone.
// Running it as one script keeps concurrent requests from overshooting.
// The third reply is the milliseconds left until the counter expires.
var fixedWindow = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if current >= limit then
	return {0, current, redis.call('PTTL', KEYS[1])}
end
current = redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], ARGV[2])
return {1, current, tonumber(ARGV[2]) * 1000}
`)

// RateDecision is the outcome of one Check.
type RateDecision struct {
	Allowed bool
	Count   int64
	Limit   int
	Window  time.Duration
	// RetryAfter is the time until the client's window resets.
	RetryAfter time.Duration
}

// Remaining is the number of requests left in the window.
func (d RateDecision) Remaining() int64 {
	if r := int64(d.Limit) - d.Count; r > 0 {
		return r
	}
	return 0
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, at least one.
func (d RateDecision) RetryAfterSeconds() int {
	seconds := int((d.RetryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// RateLimiter is a fixed-window counter per bucket and client.
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Key is the counter key of a bucket/client pair.
func (r *RateLimiter) Key(bucket, clientID string) string {
	return fmt.Sprintf("ratelimit:%s:%s", bucket, clientID)
}

// Check admits or rejects one request.
func (r *RateLimiter) Check(ctx context.Context, bucket, clientID string, limit int, window time.Duration) (RateDecision, error) {
	decision := RateDecision{Limit: limit, Window: window}
	seconds := int64(window / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	key := r.Key(bucket, clientID)
	res, err := fixedWindow.Run(ctx, r.client, []string{key}, limit, seconds).Int64Slice()
	if err != nil {
		return decision, fmt.Errorf("failed to execute rate limit script: %w", err)
	}
	if len(res) != 3 {
		return decision, fmt.Errorf("unexpected rate limit reply: %v", res)
	}

	decision.Allowed = res[0] == 1
	decision.Count = res[1]
	decision.RetryAfter = window
	// PTTL is negative when the key has no expiry or is gone.
	if res[2] > 0 {
		decision.RetryAfter = time.Duration(res[2]) * time.Millisecond
	}
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", decision.Count),
		zap.Int("limit", limit),
		zap.Bool("allowed", decision.Allowed))
	return decision, nil
}
