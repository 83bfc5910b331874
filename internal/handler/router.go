package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/metrics"
	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/ratelimit"
)

// RouterDeps yönlendiricinin tüm bağımlılıklarını toplar.
type RouterDeps struct {
	// Oturum ve ortam
	SessionSecret []byte
	SessionMaxAge int
	CookieSecure  bool
	Uretim        bool

	// Ara katmanlar
	CORSAllowedOrigin string
	Limiter           ratelimit.Limiter
	RateLimit         int
	GirisLimiti       *middleware.GirisLimiti
	Metrics           *metrics.Collector
	Logger            *slog.Logger

	// Servisler
	AuthService      AuthServiceInterface
	CikisKaydedici   CikisKaydedici
	KisiService      KisiServiceInterface
	BolgeService     BolgeServiceInterface
	KatalogService   KatalogServiceInterface
	AlarmService     AlarmServiceInterface
	PersonelService  PersonelServiceInterface
	WorkspaceService WorkspaceServiceInterface
	DenetimOkuyucu   DenetimOkuyucu
	Yukleyici        Yukleyici

	// Statik dosyalar
	YuklemeDizini string
}

// NewRouter tüm uç noktaları ve ara katman zincirini kurar.
//
// Zincir sırası: recovery, güvenlik başlıkları, CORS, loglama,
// metrikler, oturum kapısı, genel istek sınırı. Giriş ucuna ayrıca
// kaba kuvvet sınırı sarılır.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware(deps.Uretim))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument)
	}
	r.Use(middleware.NewGateMiddleware(deps.SessionSecret, deps.CookieSecure, deps.Logger))
	r.Use(middleware.NewRateLimitMiddleware(deps.Limiter, deps.RateLimit, deps.Metrics, deps.Logger))

	authHandler := NewAuthHandler(deps.AuthService, deps.CikisKaydedici, AuthConfig{
		Secret:       deps.SessionSecret,
		MaxAge:       deps.SessionMaxAge,
		CookieSecure: deps.CookieSecure,
		Uretim:       deps.Uretim,
	})
	kisiHandler := NewKisiHandler(deps.KisiService, deps.Uretim)
	bolgeHandler := NewBolgeHandler(deps.BolgeService, deps.Uretim)
	katalogHandler := NewKatalogHandler(deps.KatalogService, deps.Uretim)
	alarmHandler := NewAlarmHandler(deps.AlarmService, deps.Uretim)
	personelHandler := NewPersonelHandler(deps.PersonelService, deps.Uretim)
	workspaceHandler := NewWorkspaceHandler(deps.WorkspaceService, deps.Uretim)
	denetimHandler := NewDenetimHandler(deps.DenetimOkuyucu, deps.Uretim)
	uploadHandler := NewUploadHandler(deps.Yukleyici, deps.Uretim)

	r.Get("/health", Saglik)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
	r.Get("/giris", GirisSayfasi)

	if deps.YuklemeDizini != "" {
		sunucu := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.YuklemeDizini)))
		r.Handle("/uploads/*", sunucu)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if deps.GirisLimiti != nil {
				r.With(deps.GirisLimiti.Middleware()).Post("/login", authHandler.Login)
			} else {
				r.Post("/login", authHandler.Login)
			}
			r.Post("/logout", authHandler.Logout)
			r.Get("/ben", authHandler.Ben)
		})

		r.Route("/kisiler", func(r chi.Router) {
			r.Get("/", kisiHandler.Listele)
			r.Post("/", kisiHandler.Olustur)
			r.Post("/toplu-sil", kisiHandler.TopluSil)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", kisiHandler.Getir)
				r.Put("/", kisiHandler.Guncelle)
				r.Delete("/", kisiHandler.Sil)
				r.Post("/arsivle", kisiHandler.Arsivle)
				r.Get("/iliskiler", kisiHandler.Iliskiler)
				r.Get("/telefonlar", kisiHandler.Telefonlar)
				r.Post("/telefonlar", kisiHandler.TelefonEkle)
				r.Delete("/telefonlar/{telefonId}", kisiHandler.TelefonSil)
			})
		})

		r.Route("/bolgeler", func(r chi.Router) {
			r.Get("/", bolgeHandler.Listele)
			r.Post("/", bolgeHandler.Olustur)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", bolgeHandler.Getir)
				r.Put("/", bolgeHandler.Guncelle)
				r.Delete("/", bolgeHandler.Sil)
			})
		})

		r.Route("/katalog", func(r chi.Router) {
			r.Route("/markalar", func(r chi.Router) {
				r.Get("/", katalogHandler.Markalar)
				r.Post("/", katalogHandler.MarkaOlustur)
				r.Delete("/{id}", katalogHandler.MarkaSil)
				r.Get("/{id}/modeller", katalogHandler.Modeller)
				r.Post("/{id}/modeller", katalogHandler.ModelOlustur)
			})
			r.Delete("/modeller/{id}", katalogHandler.ModelSil)
		})

		r.Route("/alarmlar", func(r chi.Router) {
			r.Get("/", alarmHandler.Listele)
			r.Post("/", alarmHandler.Olustur)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", alarmHandler.Getir)
				r.Put("/", alarmHandler.Guncelle)
				r.Delete("/", alarmHandler.Sil)
				r.Post("/durdur", alarmHandler.Durdur)
			})
		})

		r.Route("/personeller", func(r chi.Router) {
			r.Get("/", personelHandler.Listele)
			r.Post("/", personelHandler.Olustur)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", personelHandler.Getir)
				r.Put("/", personelHandler.Guncelle)
				r.Delete("/", personelHandler.Sil)
			})
		})

		r.Get("/workspace", workspaceHandler.Getir)
		r.Put("/workspace", workspaceHandler.Kaydet)
		r.Get("/tercihler", workspaceHandler.Tercihler)
		r.Put("/tercihler", workspaceHandler.TercihKaydet)

		r.Get("/denetim/{entityTipi}/{entityId}", denetimHandler.Gecmis)

		r.Post("/yuklemeler", uploadHandler.Yukle)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.HataYaz(w, &model.APIError{
			Code:     model.ErrCodeNotFound,
			Message:  "İstenen adres bulunamadı.",
			Category: "kayit",
			Action:   "Adresi kontrol edin.",
		})
	})

	return r
}

// Saglik canlılık ucudur; bağımlılık kontrolü yapmaz.
// GET /health
func Saglik(w http.ResponseWriter, r *http.Request) {
	VeriYaz(w, http.StatusOK, map[string]string{"durum": "ok"})
}
