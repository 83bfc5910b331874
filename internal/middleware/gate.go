// Package middleware HTTP ara katmanlarını içerir.
package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/altay-yazilim/bplani/internal/auth"
)

// OturumCerezi oturum token'ını taşıyan çerezin adıdır.
const OturumCerezi = "bplani_oturum"

// GirisYolu oturumsuz tarayıcı isteklerinin yönlendirildiği sayfa.
const GirisYolu = "/giris"

// acikYollar oturum istemeyen yollar. Önek eşleşen yollar "/" ile biter.
var acikYollar = []string{
	GirisYolu,
	"/api/auth/login",
	"/health",
	"/metrics",
	"/assets/",
	"/uploads/",
}

func yolAcik(yol string) bool {
	for _, acik := range acikYollar {
		if strings.HasSuffix(acik, "/") {
			if strings.HasPrefix(yol, acik) {
				return true
			}
			continue
		}
		if yol == acik {
			return true
		}
	}
	return false
}

// NewGateMiddleware her isteği oturum kontrolünden geçiren kapı
// ara katmanını döndürür. Açık yollar dışındaki her istek geçerli bir
// oturum çerezi taşımak zorundadır.
//
// Oturumsuz istek tarayıcıdan geliyorsa giriş sayfasına 303 ile
// yönlendirilir ve istenen adres redirect parametresinde korunur;
// JSON bekleyen istemciler 401 hata zarfı alır. Geçersiz veya süresi
// dolmuş çerez yanıtta silinir. Kapı hiçbir durumda panic'e izin
// vermez; doğrulama hatası her zaman oturumsuz istek gibi işlenir.
func NewGateMiddleware(secret []byte, cookieSecure bool, logger *slog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if yolAcik(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(OturumCerezi)
			if err != nil || cookie.Value == "" {
				oturumsuzYanit(w, r)
				return
			}

			oturum, err := auth.TokenDogrula(secret, cookie.Value)
			if err != nil {
				logger.Info("geçersiz oturum token'ı",
					"path", r.URL.Path,
					"error", err)
				CerezSil(w, cookieSecure)
				oturumsuzYanit(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithOturum(r.Context(), oturum)))
		})
	}
}

// jsonIstiyor istemcinin JSON hata zarfı beklediğini söyler.
func jsonIstiyor(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func oturumsuzYanit(w http.ResponseWriter, r *http.Request) {
	if jsonIstiyor(r) {
		YetkisizYaz(w)
		return
	}
	hedef := GirisYolu + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, hedef, http.StatusSeeOther)
}

// CerezSil oturum çerezini yanıtta geçersiz kılar.
func CerezSil(w http.ResponseWriter, cookieSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     OturumCerezi,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CerezKur oturum token'ını HTTP-only çereze yazar.
func CerezKur(w http.ResponseWriter, token string, maxAge int, cookieSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     OturumCerezi,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
