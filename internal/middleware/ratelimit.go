package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/altay-yazilim/bplani/internal/metrics"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/ratelimit"
)

// IstemciAnahtari istek sahibinin rate limit anahtarını üretir.
// Önce X-Forwarded-For'un ilk girdisi, sonra RemoteAddr'ın host kısmı
// kullanılır; ikisi de yoksa ortak "anonim" kovasına düşülür.
func IstemciAnahtari(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ilk := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ilk != "" {
			return ilk
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "anonim"
}

// NewRateLimitMiddleware API isteklerini istemci başına sınırlayan ara
// katmanı döndürür. Reddedilen istek 429 hata zarfı, Retry-After ve
// X-RateLimit-* başlıkları alır.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, limit int, m *metrics.Collector, logger *slog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			anahtar := IstemciAnahtari(r)
			karar := limiter.Allow(r.Context(), anahtar, limit)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(karar.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(karar.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(karar.ResetAt.Unix(), 10))

			if !karar.Allowed {
				saniye := int(time.Until(karar.ResetAt).Seconds()) + 1
				if saniye < 1 {
					saniye = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(saniye))

				if m != nil {
					m.RecordRateLimitRet()
				}
				logger.Warn("istek sınırı aşıldı",
					"anahtar", anahtar,
					"path", r.URL.Path)
				HataYaz(w, model.NewRateLimitedError(karar.ResetAt))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// girisLimiter IP başına token bucket tutar.
type girisLimiter struct {
	limiter   *rate.Limiter
	sonErisim time.Time
}

// GirisLimiti giriş denemelerini IP başına sınırlar. Genel API
// sınırından bağımsız çalışır; kaba kuvvet parola denemelerini yavaşlatır.
type GirisLimiti struct {
	mu       sync.Mutex
	girdiler map[string]*girisLimiter
	oran     rate.Limit
	patlama  int
	stopCh   chan struct{}
}

// NewGirisLimiti dakikadaki deneme sınırıyla yeni giriş limiti kurar.
func NewGirisLimiti(dakikadaDeneme int) *GirisLimiti {
	if dakikadaDeneme <= 0 {
		dakikadaDeneme = 10
	}
	g := &GirisLimiti{
		girdiler: make(map[string]*girisLimiter),
		oran:     rate.Limit(float64(dakikadaDeneme) / 60.0),
		patlama:  dakikadaDeneme,
		stopCh:   make(chan struct{}),
	}
	go g.temizlikDongusu()
	return g
}

// Stop arka plan temizliğini durdurur.
func (g *GirisLimiti) Stop() {
	close(g.stopCh)
}

// Middleware giriş uç noktasına sarılan ara katmanı döndürür.
func (g *GirisLimiti) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.izinli(IstemciAnahtari(r)) {
				w.Header().Set("Retry-After", "60")
				HataYaz(w, model.NewRateLimitedError(time.Now().Add(time.Minute)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g *GirisLimiti) izinli(anahtar string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	girdi, ok := g.girdiler[anahtar]
	if !ok {
		girdi = &girisLimiter{limiter: rate.NewLimiter(g.oran, g.patlama)}
		g.girdiler[anahtar] = girdi
	}
	girdi.sonErisim = time.Now()
	return girdi.limiter.Allow()
}

// GirdiSayisi izlenen anahtar sayısını döndürür.
func (g *GirisLimiti) GirdiSayisi() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.girdiler)
}

func (g *GirisLimiti) temizlikDongusu() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.temizle()
		case <-g.stopCh:
			return
		}
	}
}

func (g *GirisLimiti) temizle() {
	g.mu.Lock()
	defer g.mu.Unlock()

	esik := time.Now().Add(-10 * time.Minute)
	for anahtar, girdi := range g.girdiler {
		if girdi.sonErisim.Before(esik) {
			delete(g.girdiler, anahtar)
		}
	}
}
