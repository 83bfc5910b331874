// Package notify vadesi gelen alarmların webhook bildirimlerini
// gönderir. Teslim sonrası alarm durumu geri yazılır.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/altay-yazilim/bplani/internal/metrics"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
	"github.com/altay-yazilim/bplani/internal/security"
)

// Dispatcher tek bir alarmın webhook bildirimini gönderir.
type Dispatcher struct {
	repo    repository.AlarmRepository
	guard   security.SSRFGuard
	metrics *metrics.Collector
	logger  *slog.Logger
	timeout time.Duration
}

func NewDispatcher(
	repo repository.AlarmRepository,
	guard security.SSRFGuard,
	m *metrics.Collector,
	logger *slog.Logger,
	timeout time.Duration,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{repo: repo, guard: guard, metrics: m, logger: logger, timeout: timeout}
}

// bildirimGovdesi webhook'a POST edilen JSON.
type bildirimGovdesi struct {
	AlarmID     string    `json:"alarmId"`
	Baslik      string    `json:"baslik"`
	Aciklama    string    `json:"aciklama,omitempty"`
	KisiID      *string   `json:"kisiId,omitempty"`
	TetikZamani time.Time `json:"tetikZamani"`
}

// Gonder alarmın bildirimini teslim eder ve sonucu alarma geri yazar.
func (d *Dispatcher) Gonder(ctx context.Context, a *model.Alarm) error {
	// Webhook'u olmayan alarm yalnızca uygulama içinde görünür;
	// tetik zamanı gelince doğrudan tetiklenmiş sayılır.
	if a.WebhookURL == "" {
		UygulaBasari(a)
		return d.durumYaz(ctx, a)
	}

	if err := d.guard.ValidateURL(a.WebhookURL); err != nil {
		d.logger.Error("webhook adresi SSRF doğrulamasını geçemedi",
			"alarm_id", a.ID,
			"webhook_url", a.WebhookURL,
			"error", err)
		UygulaDur(a, fmt.Sprintf("webhook adresi reddedildi: %s", err))
		d.hataSay()
		return d.durumYaz(ctx, a)
	}

	govde, err := json.Marshal(bildirimGovdesi{
		AlarmID:     a.ID,
		Baslik:      a.Baslik,
		Aciklama:    a.Aciklama,
		KisiID:      a.KisiID,
		TetikZamani: a.TetikZamani,
	})
	if err != nil {
		return fmt.Errorf("bildirim gövdesi serileştirilemedi: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.WebhookURL, bytes.NewReader(govde))
	if err != nil {
		return fmt.Errorf("bildirim isteği oluşturulamadı: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "bplani-alarm/1.0")

	client := d.guard.NewSafeClient(d.timeout)
	resp, err := client.Do(req)
	if err != nil {
		// Ağ hatası geçici sayılır.
		UygulaBackoff(a, fmt.Sprintf("webhook ulaşılamadı: %s", err))
		d.hataSay()
		return d.durumYaz(ctx, a)
	}
	defer func() {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
	}()

	switch DurumSinifla(resp.StatusCode) {
	case BildirimOK:
		UygulaBasari(a)
		if d.metrics != nil {
			d.metrics.RecordBildirimBasari()
		}
		d.logger.Info("alarm bildirimi teslim edildi",
			"alarm_id", a.ID,
			"status", resp.StatusCode)
	case BildirimDur:
		UygulaDur(a, fmt.Sprintf("webhook kalıcı hata döndürdü: %d", resp.StatusCode))
		d.hataSay()
		d.logger.Warn("alarm bildirimi kalıcı hatayla durduruldu",
			"alarm_id", a.ID,
			"status", resp.StatusCode)
	default:
		UygulaBackoff(a, fmt.Sprintf("webhook geçici hata döndürdü: %d", resp.StatusCode))
		d.hataSay()
		d.logger.Warn("alarm bildirimi geçici hata aldı",
			"alarm_id", a.ID,
			"status", resp.StatusCode,
			"ardisik_hata", a.ArdisikHata)
	}
	return d.durumYaz(ctx, a)
}

func (d *Dispatcher) hataSay() {
	if d.metrics != nil {
		d.metrics.RecordBildirimHata()
	}
}

func (d *Dispatcher) durumYaz(ctx context.Context, a *model.Alarm) error {
	if err := d.repo.Update(ctx, a); err != nil {
		return fmt.Errorf("alarm durumu yazılamadı: %w", err)
	}
	return nil
}
