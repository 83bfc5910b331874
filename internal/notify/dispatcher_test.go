package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/altay-yazilim/bplani/internal/model"
)

type sahteAlarmRepo struct {
	guncellenen *model.Alarm
}

func (r *sahteAlarmRepo) FindByID(_ context.Context, _ string) (*model.Alarm, error) {
	return nil, nil
}

func (r *sahteAlarmRepo) List(_ context.Context, _ model.ListeSecenekleri) ([]*model.Alarm, int, error) {
	return nil, 0, nil
}

func (r *sahteAlarmRepo) Create(_ context.Context, _ *model.Alarm) error { return nil }

func (r *sahteAlarmRepo) Update(_ context.Context, a *model.Alarm) error {
	r.guncellenen = a
	return nil
}

func (r *sahteAlarmRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *sahteAlarmRepo) ListVadesiGelen(_ context.Context, _ int) ([]*model.Alarm, error) {
	return nil, nil
}

// izinliGuard test sunucusuna erişime izin veren guard.
type izinliGuard struct{}

func (izinliGuard) NewSafeClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (izinliGuard) ValidateURL(_ string) error { return nil }

func yeniDispatcher(repo *sahteAlarmRepo) *Dispatcher {
	return NewDispatcher(repo, izinliGuard{}, nil, nil, 5*time.Second)
}

func testAlarm(webhookURL string) *model.Alarm {
	return &model.Alarm{
		ID:          "a1",
		Baslik:      "Takip araması",
		Aciklama:    "Müşteriyi ara",
		TetikZamani: time.Now().Add(-time.Minute).UTC(),
		WebhookURL:  webhookURL,
		Durum:       model.AlarmAktif,
	}
}

func TestGonderBasarili(t *testing.T) {
	var alinan bildirimGovdesi
	sunucu := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&alinan); err != nil {
			t.Errorf("gövde çözülemedi: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer sunucu.Close()

	repo := &sahteAlarmRepo{}
	a := testAlarm(sunucu.URL)
	if err := yeniDispatcher(repo).Gonder(context.Background(), a); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}

	if a.Durum != model.AlarmTetiklendi {
		t.Errorf("durum = %s", a.Durum)
	}
	if alinan.AlarmID != "a1" || alinan.Baslik != "Takip araması" {
		t.Errorf("gövde = %+v", alinan)
	}
	if repo.guncellenen == nil {
		t.Error("alarm durumu repoya yazılmalı")
	}
}

func TestGonderKaliciHataDurdurur(t *testing.T) {
	sunucu := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer sunucu.Close()

	repo := &sahteAlarmRepo{}
	a := testAlarm(sunucu.URL)
	if err := yeniDispatcher(repo).Gonder(context.Background(), a); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}

	if a.Durum != model.AlarmDurduruldu {
		t.Errorf("410 sonrası alarm durmalı, durum = %s", a.Durum)
	}
}

func TestGonderGeciciHataBackoff(t *testing.T) {
	sunucu := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer sunucu.Close()

	repo := &sahteAlarmRepo{}
	a := testAlarm(sunucu.URL)
	if err := yeniDispatcher(repo).Gonder(context.Background(), a); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}

	if a.Durum != model.AlarmAktif {
		t.Errorf("geçici hatada alarm aktif kalmalı, durum = %s", a.Durum)
	}
	if a.ArdisikHata != 1 || a.SonrakiDeneme == nil {
		t.Errorf("backoff uygulanmadı: %+v", a)
	}
}

func TestGonderWebhooksuzAlarmTetiklenir(t *testing.T) {
	repo := &sahteAlarmRepo{}
	a := testAlarm("")
	if err := yeniDispatcher(repo).Gonder(context.Background(), a); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if a.Durum != model.AlarmTetiklendi {
		t.Errorf("durum = %s", a.Durum)
	}
}

func TestGonderAgHatasiBackoff(t *testing.T) {
	sunucu := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	sunucu.Close() // kapalı sunucu, bağlantı reddedilir

	repo := &sahteAlarmRepo{}
	a := testAlarm(sunucu.URL)
	if err := yeniDispatcher(repo).Gonder(context.Background(), a); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if a.ArdisikHata != 1 {
		t.Errorf("ağ hatası backoff saymalı: %+v", a)
	}
}
