// Package app uygulamanın başlatma modlarını ve bağımlılık
// kablolamasını içerir.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/altay-yazilim/bplani/internal/alarm"
	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/bolge"
	"github.com/altay-yazilim/bplani/internal/config"
	"github.com/altay-yazilim/bplani/internal/database"
	"github.com/altay-yazilim/bplani/internal/handler"
	"github.com/altay-yazilim/bplani/internal/katalog"
	"github.com/altay-yazilim/bplani/internal/kisi"
	"github.com/altay-yazilim/bplani/internal/logger"
	"github.com/altay-yazilim/bplani/internal/metrics"
	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/notify"
	"github.com/altay-yazilim/bplani/internal/personel"
	"github.com/altay-yazilim/bplani/internal/ratelimit"
	"github.com/altay-yazilim/bplani/internal/repository"
	"github.com/altay-yazilim/bplani/internal/security"
	"github.com/altay-yazilim/bplani/internal/upload"
	"github.com/altay-yazilim/bplani/internal/worker/alarmscan"
	"github.com/altay-yazilim/bplani/internal/workspace"
)

// Init log altyapısını kurar ve yapılandırmayı yükler.
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Run uygulamanın ana giriş noktasıdır. args olarak os.Args[1:] verilir.
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck hafif alt komuttur; tam başlatmayı atlar.
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe API sunucusu modunda başlatır. Tüm bağımlılıkları kablolar
// ve SIGINT/SIGTERM ile düzgün kapanan HTTP sunucusunu çalıştırır.
func runServe(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	slog.Info("database connection established")

	// Repository'ler
	kisiRepo := repository.NewPostgresKisiRepository(db)
	bolgeRepo := repository.NewPostgresBolgeRepository(db)
	katalogRepo := repository.NewPostgresKatalogRepository(db)
	alarmRepo := repository.NewPostgresAlarmRepository(db)
	personelRepo := repository.NewPostgresPersonelRepository(db)
	denetimRepo := repository.NewPostgresDenetimRepository(db)
	tercihRepo := repository.NewPostgresTercihRepository(db)

	// Metrikler ve denetim
	m := metrics.NewCollector(prometheus.NewRegistry())
	denetim := audit.NewKaydedici(denetimRepo, m, slog.Default())

	// Servisler
	sanitizer := security.NewNotSanitizer()
	kisiService := kisi.NewService(kisiRepo, denetim, sanitizer, personelRepo)
	bolgeService := bolge.NewService(bolgeRepo, denetim)
	katalogService := katalog.NewService(katalogRepo, denetim)
	alarmService := alarm.NewService(alarmRepo, denetim, personelRepo)
	personelService := personel.NewService(personelRepo, denetim)
	workspaceService := workspace.NewService(tercihRepo)

	uploadStore, err := upload.NewStore(cfg.YuklemeDizini, cfg.YuklemeBoyutTavan)
	if err != nil {
		return fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	// İstek sınırlayıcılar
	limiter, err := ratelimit.FromConfig(cfg.RedisURL, cfg.RateLimitPencere)
	if err != nil {
		return fmt.Errorf("failed to build rate limiter: %w", err)
	}
	girisLimiti := middleware.NewGirisLimiti(cfg.RateLimitGiris)
	defer girisLimiti.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		SessionSecret: []byte(cfg.SessionSecret),
		SessionMaxAge: cfg.SessionMaxAge,
		CookieSecure:  cfg.CookieSecure,
		Uretim:        cfg.Uretim(),

		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Limiter:           limiter,
		RateLimit:         cfg.RateLimitGenel,
		GirisLimiti:       girisLimiti,
		Metrics:           m,
		Logger:            slog.Default(),

		AuthService:      personelService,
		CikisKaydedici:   denetim,
		KisiService:      kisiService,
		BolgeService:     bolgeService,
		KatalogService:   katalogService,
		AlarmService:     alarmService,
		PersonelService:  personelService,
		WorkspaceService: workspaceService,
		DenetimOkuyucu:   denetim,
		Yukleyici:        uploadStore,

		YuklemeDizini: uploadStore.Dizin(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker alarm bildirim worker'ını başlatır. Vadesi gelen alarmlar
// taranır ve webhook bildirimleri SSRF korumalı istemciyle gönderilir.
func runWorker(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	slog.Info("database connection established (worker)")

	alarmRepo := repository.NewPostgresAlarmRepository(db)
	ssrfGuard := security.NewSSRFGuard()
	m := metrics.NewCollector(prometheus.NewRegistry())

	dispatcher := notify.NewDispatcher(alarmRepo, ssrfGuard, m, slog.Default(), cfg.BildirimZamanAsimi)
	scheduler := alarmscan.NewScheduler(alarmRepo, dispatcher, slog.Default(), cfg.BildirimMaksParalel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("scan_interval", cfg.BildirimTaramaAralik),
		slog.Int("max_concurrent", cfg.BildirimMaksParalel),
	)

	scheduler.Start(ctx, cfg.BildirimTaramaAralik)

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate bekleyen veritabanı migration'larını sırayla uygular.
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck çalışan sunucunun /health ucunu yoklar.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// maskDatabaseURL veritabanı URL'sindeki kimlik bilgilerini maskeler.
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
