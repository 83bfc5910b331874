// Package config ortam değişkenlerinden uygulama yapılandırmasını yükler.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config uygulama genelinin yapılandırmasını tutar.
// Başlangıçta bir kez okunur ve immutable kabul edilir.
type Config struct {
	// Database
	DatabaseURL string

	// Oturum
	SessionSecret string
	SessionMaxAge int // saniye

	// Rate limit
	RedisURL         string // boşsa bellek-içi limiter kullanılır
	RateLimitGenel   int    // pencere başına istek sayısı
	RateLimitPencere time.Duration
	RateLimitGiris   int // login denemesi / dakika

	// Alarm bildirimi
	BildirimZamanAsimi   time.Duration
	BildirimMaksParalel  int
	BildirimTaramaAralik time.Duration

	// Dosya yükleme
	YuklemeDizini     string
	YuklemeBoyutTavan int64

	// Server
	ServerPort string
	BaseURL    string
	Ortam      string // "production" | "development"

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string
}

// Uretim, yapılandırmanın üretim ortamını gösterip göstermediğini döndürür.
// Üretimde beklenmeyen hataların mesajları istemciden gizlenir.
func (c *Config) Uretim() bool {
	return c.Ortam == "production"
}

// Load ortam değişkenlerinden Config yükler.
// Zorunlu değişkenler eksikse hata döner.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("zorunlu ortam değişkenleri eksik: %v", missing)
	}

	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RateLimitGenel = getEnvInt("RATE_LIMIT_GENEL", 120)
	cfg.RateLimitPencere = getEnvDuration("RATE_LIMIT_PENCERE", time.Minute)
	cfg.RateLimitGiris = getEnvInt("RATE_LIMIT_GIRIS", 10)
	cfg.BildirimZamanAsimi = getEnvDuration("BILDIRIM_ZAMAN_ASIMI", 10*time.Second)
	cfg.BildirimMaksParalel = getEnvInt("BILDIRIM_MAKS_PARALEL", 10)
	cfg.BildirimTaramaAralik = getEnvDuration("BILDIRIM_TARAMA_ARALIK", time.Minute)
	cfg.YuklemeDizini = getEnvString("YUKLEME_DIZINI", "./uploads")
	cfg.YuklemeBoyutTavan = getEnvInt64("YUKLEME_BOYUT_TAVAN", 5242880)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.Ortam = getEnvString("ORTAM", "development")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
