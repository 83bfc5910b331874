package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// sayacScript pencere başına sayacı atomik artırır ve kalan TTL'i döndürür.
// İlk istek pencereyi açar (PEXPIRE); sonrakiler mevcudu artırır.
var sayacScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RedisLimiter dış depo destekli dağıtık limiter'dır.
// Redis erişilemezse bellek-içi fallback'e düşer; istekleri asla
// salt bağlantı hatası yüzünden reddetmez.
type RedisLimiter struct {
	client   *redis.Client
	pencere  time.Duration
	prefix   string
	fallback *InMemoryLimiter
}

// NewRedis Redis destekli limiter oluşturur.
func NewRedis(client *redis.Client, pencere time.Duration) *RedisLimiter {
	if pencere <= 0 {
		pencere = time.Minute
	}
	return &RedisLimiter{
		client:   client,
		pencere:  pencere,
		prefix:   "bplani:rl:",
		fallback: NewInMemory(pencere),
	}
}

// Allow, Limiter arayüzünü uygular.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int) Karar {
	if limit <= 0 {
		limit = 1
	}
	if l.client == nil {
		return l.fallback.Allow(ctx, key, limit)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := sayacScript.Run(ctx, l.client, []string{l.prefix + key}, l.pencere.Milliseconds()).Result()
	if err != nil {
		return l.fallback.Allow(ctx, key, limit)
	}
	vals, ok := res.([]interface{})
	if !ok || len(vals) < 2 {
		return l.fallback.Allow(ctx, key, limit)
	}

	sayi, _ := vals[0].(int64)
	ttlMs, _ := vals[1].(int64)
	if ttlMs < 0 {
		ttlMs = l.pencere.Milliseconds()
	}

	kalan := limit - int(sayi)
	if kalan < 0 {
		kalan = 0
	}
	return Karar{
		Allowed:   int(sayi) <= limit,
		Limit:     limit,
		Remaining: kalan,
		ResetAt:   time.Now().UTC().Add(time.Duration(ttlMs) * time.Millisecond),
	}
}

// FromConfig yapılandırmaya göre limiter seçer: redisURL doluysa Redis,
// boşsa süreç-yerel kayan pencere. Seçim başlangıçta bir kez yapılır.
func FromConfig(redisURL string, pencere time.Duration) (Limiter, error) {
	if redisURL == "" {
		return NewInMemory(pencere), nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return NewRedis(redis.NewClient(opts), pencere), nil
}
