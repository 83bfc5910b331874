package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/ratelimit"
)

func TestRateLimitIzinliIstekBasliklariAlir(t *testing.T) {
	limiter := ratelimit.NewInMemory(time.Minute)
	mw := NewRateLimitMiddleware(limiter, 5, nil, nil)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/kisiler", nil)
	req.RemoteAddr = "203.0.113.10:54321"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("beklenen 200, gelen %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Errorf("X-RateLimit-Limit beklenen 5, gelen %s", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Errorf("X-RateLimit-Remaining beklenen 4, gelen %s", got)
	}
	if w.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset başlığı boş olmamalı")
	}
}

func TestRateLimitAsimindaHataZarfiDoner(t *testing.T) {
	limiter := ratelimit.NewInMemory(time.Minute)
	mw := NewRateLimitMiddleware(limiter, 1, nil, nil)

	cagriSayisi := 0
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cagriSayisi++
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/kisiler", nil)
	req.RemoteAddr = "203.0.113.11:54321"

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, req)
	if w1.Code != http.StatusOK {
		t.Fatalf("ilk istek geçmeli, gelen %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, req)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("beklenen 429, gelen %d", w2.Code)
	}
	if cagriSayisi != 1 {
		t.Errorf("reddedilen istek iç handler'a ulaşmamalı, çağrı sayısı %d", cagriSayisi)
	}
	if w2.Header().Get("Retry-After") == "" {
		t.Error("429 yanıtında Retry-After olmalı")
	}

	var zarf struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &zarf); err != nil {
		t.Fatalf("hata zarfı çözülemedi: %v", err)
	}
	if zarf.Error.Code != model.ErrCodeRateLimited {
		t.Errorf("beklenen kod %s, gelen %s", model.ErrCodeRateLimited, zarf.Error.Code)
	}
}

func TestRateLimitFarkliIstemcilerAyriSayilir(t *testing.T) {
	limiter := ratelimit.NewInMemory(time.Minute)
	mw := NewRateLimitMiddleware(limiter, 1, nil, nil)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"203.0.113.20:1000", "203.0.113.21:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/api/kisiler", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: ilk istek geçmeli, gelen %d", addr, w.Code)
		}
	}
}

func TestIstemciAnahtari(t *testing.T) {
	testler := []struct {
		ad       string
		xff      string
		remote   string
		beklenen string
	}{
		{"xff ilk girdi", "198.51.100.7, 10.0.0.1", "127.0.0.1:8080", "198.51.100.7"},
		{"xff yoksa remote host", "", "203.0.113.5:44321", "203.0.113.5"},
		{"port'suz remote oldugu gibi", "", "203.0.113.5", "203.0.113.5"},
		{"hicbiri yoksa anonim", "", "", "anonim"},
	}

	for _, tc := range testler {
		t.Run(tc.ad, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if got := IstemciAnahtari(req); got != tc.beklenen {
				t.Errorf("beklenen %s, gelen %s", tc.beklenen, got)
			}
		})
	}
}

func TestGirisLimitiAsimSonrasiReddeder(t *testing.T) {
	g := NewGirisLimiti(3)
	defer g.Stop()
	mw := g.Middleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var son int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.30:1000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		son = w.Code
	}

	if son != http.StatusTooManyRequests {
		t.Errorf("patlama sınırı sonrası beklenen 429, gelen %d", son)
	}
	if g.GirdiSayisi() != 1 {
		t.Errorf("tek istemci için bir girdi beklenir, gelen %d", g.GirdiSayisi())
	}
}
