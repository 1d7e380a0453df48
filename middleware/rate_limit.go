// middleware/rate_limit.go
package middleware

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-redis/redis/v8"

    "wallet-payment-gateway/models"
)

type RateLimiter struct {
    client *redis.Client
}

// RateLimitConfig is the per-endpoint budget.
type RateLimitConfig struct {
    Requests int
    Window   time.Duration
    Message  string
}

// Payment attempts are expensive (each one is a fresh processor record),
// so they get the tightest budget.
var defaultConfigs = map[string]RateLimitConfig{
    "/api/process-payment": {
        Requests: 30,
        Window:   time.Minute,
        Message:  "Too many payment attempts. Please slow down.",
    },
    "/api/apple-pay/validate-merchant": {
        Requests: 60,
        Window:   time.Minute,
        Message:  "Too many merchant validation requests. Please slow down.",
    },
    "default": {
        Requests: 120,
        Window:   time.Minute,
        Message:  "Rate limit exceeded. Please slow down your requests.",
    },
}

func NewRateLimiter(redisURL string) (*RateLimiter, error) {
    opt, err := redis.ParseURL(redisURL)
    if err != nil {
        return nil, fmt.Errorf("invalid Redis URL for rate limiter: %v", err)
    }

    client := redis.NewClient(opt)

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := client.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %v", err)
    }

    return &RateLimiter{client: client}, nil
}

func (rl *RateLimiter) Client() *redis.Client {
    return rl.client
}

func (rl *RateLimiter) Close() error {
    return rl.client.Close()
}

// RateLimitMiddleware returns the rate limiting middleware. Redis
// errors fail open: the request is allowed and the error logged.
func (rl *RateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if r.Method == "OPTIONS" {
                next.ServeHTTP(w, r)
                return
            }

            config := rl.getConfigForEndpoint(r.URL.Path)
            key := rl.getRateLimitKey(r)

            allowed, remaining, resetTime, err := rl.checkRateLimit(r.Context(), key, config)
            if err != nil {
                log.Printf("Rate limit check error: %v", err)
                next.ServeHTTP(w, r)
                return
            }

            w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
            w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
            w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

            if !allowed {
                log.Printf("Rate limit exceeded for key: %s, endpoint: %s", key, r.URL.Path)

                w.Header().Set("Content-Type", "application/json")
                w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
                w.WriteHeader(http.StatusTooManyRequests)

                json.NewEncoder(w).Encode(models.APIResponse{
                    Status:  "error",
                    Message: config.Message,
                })
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}

func (rl *RateLimiter) getConfigForEndpoint(path string) RateLimitConfig {
    if idx := strings.Index(path, "?"); idx != -1 {
        path = path[:idx]
    }

    if config, exists := defaultConfigs[path]; exists {
        return config
    }

    return defaultConfigs["default"]
}

func (rl *RateLimiter) getRateLimitKey(r *http.Request) string {
    return fmt.Sprintf("rate_limit:%s:%s", rl.getClientIP(r), r.URL.Path)
}

func (rl *RateLimiter) getClientIP(r *http.Request) string {
    if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
        parts := strings.Split(forwarded, ",")
        return strings.TrimSpace(parts[0])
    }
    if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
        return realIP
    }
    host, _, err := net.SplitHostPort(r.RemoteAddr)
    if err != nil {
        return r.RemoteAddr
    }
    return host
}

// checkRateLimit implements a fixed window counter in Redis.
func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string, config RateLimitConfig) (bool, int, time.Time, error) {
    count, err := rl.client.Incr(ctx, key).Result()
    if err != nil {
        return false, 0, time.Time{}, err
    }

    if count == 1 {
        if err := rl.client.Expire(ctx, key, config.Window).Err(); err != nil {
            return false, 0, time.Time{}, err
        }
    }

    ttl, err := rl.client.TTL(ctx, key).Result()
    if err != nil {
        return false, 0, time.Time{}, err
    }
    if ttl < 0 {
        ttl = config.Window
    }
    resetTime := time.Now().Add(ttl)

    remaining := config.Requests - int(count)
    if remaining < 0 {
        remaining = 0
    }

    return count <= int64(config.Requests), remaining, resetTime, nil
}
