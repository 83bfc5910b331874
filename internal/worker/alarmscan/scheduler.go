// Package alarmscan vadesi gelen alarmların taranmasını ve bildirim
// gönderiminin paralel yürütülmesini sağlar.
package alarmscan

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
)

// tarananAlarmTavani tek tarama döngüsünde işlenen azami alarm sayısı.
const tarananAlarmTavani = 100

// BildirimGonderici tek alarmın bildirimini teslim eder.
type BildirimGonderici interface {
	Gonder(ctx context.Context, a *model.Alarm) error
}

// Scheduler alarm taramasını zamanlar ve paralelliği sınırlar.
// Belirlenen aralıkla vadesi gelen alarmları sahiplenir ve semaphore
// ile sınırlı sayıda goroutine üzerinde bildirim gönderir.
type Scheduler struct {
	repo        repository.AlarmRepository
	gonderici   BildirimGonderici
	logger      *slog.Logger
	maksParalel int
}

// NewScheduler yeni zamanlayıcı döndürür. maksParalel 0 veya altıysa
// 10 kullanılır.
func NewScheduler(repo repository.AlarmRepository, gonderici BildirimGonderici, logger *slog.Logger, maksParalel int) *Scheduler {
	if maksParalel <= 0 {
		maksParalel = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{repo: repo, gonderici: gonderici, logger: logger, maksParalel: maksParalel}
}

// Start zamanlayıcıyı verilen aralıkla çalıştırır. Context iptal
// edilene kadar döner; başlangıçta bir tur hemen koşulur.
func (s *Scheduler) Start(ctx context.Context, aralik time.Duration) {
	ticker := time.NewTicker(aralik)
	defer ticker.Stop()

	s.logger.Info("alarm tarayıcı başlatıldı",
		slog.Duration("aralik", aralik),
		slog.Int("maks_paralel", s.maksParalel),
	)

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("alarm tarama turu başarısız", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("alarm tarayıcı durduruldu")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("alarm tarama turu başarısız", "error", err)
			}
		}
	}
}

// RunOnce tek tarama turu koşar: vadesi gelen alarmları alır ve
// bildirimleri paralel gönderir.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	baslangic := time.Now()

	alarmlar, err := s.repo.ListVadesiGelen(ctx, tarananAlarmTavani)
	if err != nil {
		return err
	}
	if len(alarmlar) == 0 {
		return nil
	}

	s.logger.Info("alarm tarama turu başladı", slog.Int("alarm_sayisi", len(alarmlar)))

	sem := make(chan struct{}, s.maksParalel)
	var wg sync.WaitGroup

	for _, alarm := range alarmlar {
		wg.Add(1)
		sem <- struct{}{}

		go func(a *model.Alarm) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.gonderici.Gonder(ctx, a); err != nil {
				s.logger.Error("alarm bildirimi gönderilemedi",
					"alarm_id", a.ID,
					"error", err)
			}
		}(alarm)
	}
	wg.Wait()

	s.logger.Info("alarm tarama turu tamamlandı",
		slog.Int("alarm_sayisi", len(alarmlar)),
		slog.Float64("sure_ms", float64(time.Since(baslangic).Milliseconds())),
	)
	return nil
}
