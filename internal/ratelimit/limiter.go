// Package ratelimit anahtar başına istek sınırlamasını sağlar.
//
// İki implementasyon vardır: dış depo (Redis) destekli dağıtık limiter
// ve süreç-yerel kayan pencere sayacı. Hangisinin kullanılacağı çağrı
// anında değil, başlangıçta yapılandırmayla seçilir. Bellek-içi
// limiter best-effort'tur; süreç yeniden başlayınca sayaçlar kaybolur
// ve bu kabul edilir.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Karar bir isteğin sınır denetimi sonucudur.
type Karar struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter anahtar başına istek sınırı denetimi arayüzüdür.
type Limiter interface {
	// Allow anahtarın bu pencerede bir istek daha yapıp yapamayacağını
	// döndürür. Pencere içinde tam olarak limit kadar istek geçer;
	// limit+1'inci istek reddedilir.
	Allow(ctx context.Context, key string, limit int) Karar
}

// sweepOlasilik her çağrıda süresi dolan anahtarların taranma olasılığıdır.
// Kesin zamanlama önemli değildir; fırsatçı temizlik yeterlidir.
const sweepOlasilik = 0.01

// InMemoryLimiter mutex korumalı kayan pencere sayaçlı yerel limiter'dır.
type InMemoryLimiter struct {
	mu       sync.Mutex
	pencere  time.Duration
	girdiler map[string]girdi
	rnd      *rand.Rand
	now      func() time.Time
}

type girdi struct {
	sayi    int
	resetAt time.Time
}

// NewInMemory yerel kayan pencere limiter'ı oluşturur.
// pencere sıfır veya negatifse bir dakika kullanılır.
func NewInMemory(pencere time.Duration) *InMemoryLimiter {
	if pencere <= 0 {
		pencere = time.Minute
	}
	return &InMemoryLimiter{
		pencere:  pencere,
		girdiler: make(map[string]girdi),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Allow, Limiter arayüzünü uygular.
func (l *InMemoryLimiter) Allow(_ context.Context, key string, limit int) Karar {
	if limit <= 0 {
		limit = 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()
	if l.rnd.Float64() < sweepOlasilik {
		l.temizle(now)
	}

	g, ok := l.girdiler[key]
	if !ok || now.After(g.resetAt) {
		g = girdi{sayi: 0, resetAt: now.Add(l.pencere)}
	}
	g.sayi++
	l.girdiler[key] = g

	kalan := limit - g.sayi
	if kalan < 0 {
		kalan = 0
	}
	return Karar{
		Allowed:   g.sayi <= limit,
		Limit:     limit,
		Remaining: kalan,
		ResetAt:   g.resetAt,
	}
}

// temizle süresi dolan anahtarları siler. Kilit tutulurken çağrılır.
func (l *InMemoryLimiter) temizle(now time.Time) {
	for k, g := range l.girdiler {
		if now.After(g.resetAt) {
			delete(l.girdiler, k)
		}
	}
}

// GirdiSayisi o an izlenen anahtar sayısını döndürür. Test ve metrik için.
func (l *InMemoryLimiter) GirdiSayisi() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.girdiler)
}
