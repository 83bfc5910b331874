// Package auth imzalı oturum token'ının üretimi ve doğrulamasını sağlar.
//
// Oturum sunucu tarafında saklanmaz: token, çerezin ömrü boyunca
// tarayıcının taşıdığı bir yetki belgesidir. İmza ve bitiş süresi
// paylaşılan gizli anahtarla (HS256) doğrulanır.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/model"
)

const issuer = "bplani"

// ErrInvalidToken token imza/bitiş/claim doğrulamasından geçemedi demektir.
var ErrInvalidToken = errors.New("geçersiz oturum token'ı")

// Oturum doğrulanmış token'dan türetilen oturum bilgisidir.
// Token bir kez üretildikten sonra değişmez.
type Oturum struct {
	PersonelID string
	AdSoyad    string
	Rol        model.Rol
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// claims JWT gövdesinde taşınan alanlardır.
type claims struct {
	AdSoyad string `json:"ad_soyad"`
	Rol     string `json:"rol"`
	jwt.RegisteredClaims
}

// TokenUret personel için HS256 imzalı oturum token'ı üretir.
func TokenUret(secret []byte, p *model.Personel, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("oturum gizli anahtarı yapılandırılmamış")
	}
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return "", errors.New("personel kimliği zorunlu")
	}
	if ttl <= 0 {
		return "", errors.New("ttl sıfırdan büyük olmalı")
	}

	now := time.Now().UTC()
	c := claims{
		AdSoyad: p.AdSoyad,
		Rol:     string(p.Rol),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// TokenDogrula token imzasını ve zorunlu claim'leri doğrular.
// Doğrulama tek denemedir; başarısızlıkta ErrInvalidToken döner.
func TokenDogrula(secret []byte, token string) (*Oturum, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(secret) == 0 {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if err := dogrulaClaims(c); err != nil {
		return nil, ErrInvalidToken
	}

	return &Oturum{
		PersonelID: c.Subject,
		AdSoyad:    c.AdSoyad,
		Rol:        model.Rol(c.Rol),
		IssuedAt:   c.IssuedAt.Time,
		ExpiresAt:  c.ExpiresAt.Time,
	}, nil
}

func dogrulaClaims(c *claims) error {
	if c.Issuer != issuer {
		return errors.New("beklenmeyen issuer")
	}
	if strings.TrimSpace(c.Subject) == "" {
		return errors.New("subject eksik")
	}
	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return errors.New("zaman claim'leri eksik")
	}
	now := time.Now().UTC()
	if now.After(c.ExpiresAt.Time) {
		return errors.New("token süresi dolmuş")
	}
	// Saat kayması toleransı: 5 saniye.
	if c.IssuedAt.Time.After(now.Add(5 * time.Second)) {
		return errors.New("token gelecekte üretilmiş")
	}
	if !model.Rol(c.Rol).Gecerli() {
		return errors.New("tanımsız rol")
	}
	return nil
}
