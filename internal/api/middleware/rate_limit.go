package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
)

const msgTooManyRequests = "Trop de tentatives. Veuillez patienter une minute avant de réessayer."

// Limiter решает, можно ли пропустить очередной запрос с ключом key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter фиксированное окно в одну минуту на общем Redis
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter создает лимитер на limit запросов в минуту
func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: time.Minute,
		prefix: "consultation:ratelimit:",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := l.now().Truncate(l.window).Unix()
	redisKey := l.prefix + key + ":" + strconv.FormatInt(windowStart, 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

// LocalLimiter token bucket на IP в памяти процесса
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLocalLimiter создает лимитер на perMinute запросов в минуту с таким же burst
func NewLocalLimiter(perMinute int) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow(), nil
}

// RateLimit ограничивает частоту запросов по IP клиента.
// При ошибке primary используется fallback; если и его нет, решает failOpen.
func RateLimit(primary, fallback Limiter, failOpen bool, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			allowed, err := primary.Allow(r.Context(), ip)
			if err != nil && fallback != nil {
				logger.Warn("RateLimit: primary limiter failed, using fallback: %v", err)
				allowed, err = fallback.Allow(r.Context(), ip)
			}
			if err != nil {
				logger.Error("RateLimit: limiter failed: %v", err)
				allowed = failOpen
			}

			if !allowed {
				logger.Warn("RateLimit: limit exceeded for %s on %s", ip, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP первый адрес из X-Forwarded-For или адрес соединения
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
