package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
)

// tokenSuresi çerez ömrünü token geçerlilik süresine çevirir.
func tokenSuresi(maxAge int) time.Duration {
	if maxAge <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(maxAge) * time.Second
}

// AuthServiceInterface kimlik handler'ının gereksindiği servis yüzeyi.
type AuthServiceInterface interface {
	// Login kullanıcı adı ve parolayı doğrular. Hatalı kimlik bilgisi
	// hangi alanın yanlış olduğunu söylemeyen tek tip hata üretir.
	Login(ctx context.Context, kullaniciAdi, parola string) (*model.Personel, error)
	// Ben oturumdaki personeli döndürür.
	Ben(ctx context.Context) (*model.Personel, error)
}

// CikisKaydedici çıkış olayını denetim kaydına yazar.
type CikisKaydedici interface {
	LogLogout(ctx context.Context)
}

// AuthConfig çerez ve token üretim ayarlarıdır.
type AuthConfig struct {
	Secret       []byte
	MaxAge       int // saniye
	CookieSecure bool
	Uretim       bool
}

// AuthHandler giriş, çıkış ve oturum sorgu uçlarını işler.
type AuthHandler struct {
	service AuthServiceInterface
	denetim CikisKaydedici
	config  AuthConfig
}

// NewAuthHandler AuthHandler üretir.
func NewAuthHandler(service AuthServiceInterface, denetim CikisKaydedici, config AuthConfig) *AuthHandler {
	return &AuthHandler{service: service, denetim: denetim, config: config}
}

type girisIstegi struct {
	KullaniciAdi string `json:"kullaniciAdi"`
	Parola       string `json:"parola"`
}

type personelYaniti struct {
	ID           string    `json:"id"`
	KullaniciAdi string    `json:"kullaniciAdi"`
	AdSoyad      string    `json:"adSoyad"`
	Rol          model.Rol `json:"rol"`
	Aktif        bool      `json:"aktif"`
}

func toPersonelYaniti(p *model.Personel) personelYaniti {
	return personelYaniti{
		ID:           p.ID,
		KullaniciAdi: p.KullaniciAdi,
		AdSoyad:      p.AdSoyad,
		Rol:          p.Rol,
		Aktif:        p.Aktif,
	}
}

// Login kimlik bilgilerini doğrular, başarıda imzalı oturum çerezini
// kurar.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var istek girisIstegi
	if apiErr := govdeCoz(r, &istek); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	p, err := h.service.Login(r.Context(), istek.KullaniciAdi, istek.Parola)
	if err != nil {
		hataIsle(w, r, err, h.config.Uretim)
		return
	}

	token, err := auth.TokenUret(h.config.Secret, p, tokenSuresi(h.config.MaxAge))
	if err != nil {
		hataIsle(w, r, err, h.config.Uretim)
		return
	}
	middleware.CerezKur(w, token, h.config.MaxAge, h.config.CookieSecure)

	VeriYaz(w, http.StatusOK, toPersonelYaniti(p))
}

// Logout oturum çerezini siler ve çıkışı denetim kaydına yazar.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.denetim.LogLogout(r.Context())
	middleware.CerezSil(w, h.config.CookieSecure)
	VeriYaz(w, http.StatusOK, map[string]bool{"cikisYapildi": true})
}

// Ben oturumdaki personelin güncel kaydını döndürür.
// GET /api/auth/ben
func (h *AuthHandler) Ben(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Ben(r.Context())
	if err != nil {
		hataIsle(w, r, err, h.config.Uretim)
		return
	}
	VeriYaz(w, http.StatusOK, toPersonelYaniti(p))
}
