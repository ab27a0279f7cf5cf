package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/logger"
	"github.com/redis/go-redis/v9"
)

// KeyFunc picks the bucket a request draws from.
type KeyFunc func(r *http.Request) string

// PerIPKey buckets requests by the address ips resolves.
func PerIPKey(prefix string, ips *ClientIP) KeyFunc {
	return func(r *http.Request) string {
		ip := ips.Resolve(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

// The bucket is a hash {tokens, ts}. Refill and take happen atomically on the
// server clock. Replies {allowed, whole tokens left, retry after ms}.
const tokenBucketLua = `
local rate, capacity = tonumber(ARGV[1]), tonumber(ARGV[2])

local clock = redis.call('TIME')
local now = clock[1] * 1000 + math.floor(clock[2] / 1000)

local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1]) or capacity
local last = tonumber(state[2]) or now

if now > last then
  tokens = math.min(capacity, tokens + (now - last) * rate / 1000)
end

local allowed, wait = 0, 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], math.ceil(capacity / rate * 1000))

return {allowed, math.floor(tokens), wait}
`

// TokenBucket rate limits requests with a Redis-held token bucket per key.
type TokenBucket struct {
	rdb    redis.Scripter
	script *redis.Script
	rate   float64 // tokens per second
	burst  int
	key    KeyFunc
}

func NewTokenBucket(rdb redis.Scripter, ratePerSecond float64, burst int, key KeyFunc) *TokenBucket {
	return &TokenBucket{
		rdb:    rdb,
		script: redis.NewScript(tokenBucketLua),
		rate:   ratePerSecond,
		burst:  burst,
		key:    key,
	}
}

type bucketTake struct {
	allowed    bool
	remaining  int64
	retryAfter time.Duration
}

func (tb *TokenBucket) take(ctx context.Context, key string) (bucketTake, error) {
	vals, err := tb.script.Run(ctx, tb.rdb, []string{key},
		strconv.FormatFloat(tb.rate, 'f', -1, 64), tb.burst,
	).Int64Slice()
	if err != nil {
		return bucketTake{}, err
	}
	if len(vals) != 3 {
		return bucketTake{}, fmt.Errorf("token bucket: unexpected reply %v", vals)
	}
	return bucketTake{
		allowed:    vals[0] == 1,
		remaining:  vals[1],
		retryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// Middleware lets requests through while Redis is unreachable.
func (tb *TokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := tb.key(r)
		log := logger.FromContext(r.Context())

		t, err := tb.take(r.Context(), key)
		if err != nil {
			log.WithError(err).Warn("[TokenBucket] redis unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Policy", "token-bucket")
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(tb.burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(t.remaining, 10))

		if !t.allowed {
			sec := max(int64((t.retryAfter+time.Second-1)/time.Second), 1)
			w.Header().Set("Retry-After", strconv.FormatInt(sec, 10))
			log.Warnf("[TokenBucket] blocked %s, retry after %ds", key, sec)
			apperr.WriteStatus(w, r, http.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
