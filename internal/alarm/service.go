// Package alarm zaman tetikli hatırlatma kayıtlarının iş kurallarını
// içerir. Bildirim gönderimi notify paketindedir.
package alarm

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
)

// PersonelBulucu oturumdaki kimliğin hâlâ kayıtlı olduğunu doğrulamak
// için kullanılan dar yüzeydir.
type PersonelBulucu interface {
	FindByID(ctx context.Context, id string) (*model.Personel, error)
}

// Service alarm iş mantığı.
type Service struct {
	repo        repository.AlarmRepository
	denetim     *audit.Kaydedici
	personeller PersonelBulucu
}

func NewService(repo repository.AlarmRepository, denetim *audit.Kaydedici, personeller PersonelBulucu) *Service {
	return &Service{repo: repo, denetim: denetim, personeller: personeller}
}

// cozOlusturan oturumdan gelen kimliği personel kayıtlarına karşı
// doğrular. Kayıt silinmişse oluşturan boş bırakılır.
func (s *Service) cozOlusturan(ctx context.Context, id string) string {
	if id == "" || s.personeller == nil {
		return ""
	}
	p, err := s.personeller.FindByID(ctx, id)
	if err != nil || p == nil {
		return ""
	}
	return id
}

// Girdi oluşturma ve güncelleme isteklerinin gövdesi.
type Girdi struct {
	Baslik      string    `json:"baslik"`
	Aciklama    string    `json:"aciklama"`
	TetikZamani time.Time `json:"tetikZamani"`
	WebhookURL  string    `json:"webhookUrl"`
	KisiID      *string   `json:"kisiId"`
}

func (g *Girdi) dogrula() map[string]string {
	alanlar := map[string]string{}
	g.Baslik = strings.TrimSpace(g.Baslik)
	g.WebhookURL = strings.TrimSpace(g.WebhookURL)

	if g.Baslik == "" {
		alanlar["baslik"] = "Başlık zorunludur."
	} else if len(g.Baslik) > 200 {
		alanlar["baslik"] = "Başlık 200 karakteri aşamaz."
	}
	if g.TetikZamani.IsZero() {
		alanlar["tetikZamani"] = "Tetik zamanı zorunludur."
	}
	if g.WebhookURL != "" {
		u, err := url.Parse(g.WebhookURL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			alanlar["webhookUrl"] = "Webhook adresi geçerli bir http(s) URL olmalıdır."
		}
	}
	return alanlar
}

func (s *Service) Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Alarm, int, error) {
	liste, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	s.denetim.LogList(ctx, "alarm", opts.Search, total)
	return liste, total, nil
}

func (s *Service) Getir(ctx context.Context, id string) (*model.Alarm, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, model.NewNotFoundError("alarm", id)
	}
	s.denetim.LogView(ctx, "alarm", a.ID, a.Baslik)
	return a, nil
}

func (s *Service) Olustur(ctx context.Context, girdi Girdi, olusturanID string) (*model.Alarm, error) {
	if alanlar := girdi.dogrula(); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	tetik := girdi.TetikZamani.UTC()
	a := &model.Alarm{
		ID:            uuid.NewString(),
		KisiID:        girdi.KisiID,
		Baslik:        girdi.Baslik,
		Aciklama:      girdi.Aciklama,
		TetikZamani:   tetik,
		WebhookURL:    girdi.WebhookURL,
		Durum:         model.AlarmAktif,
		SonrakiDeneme: &tetik,
		OlusturanID:   s.cozOlusturan(ctx, olusturanID),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.denetim.LogCreate(ctx, "alarm", a.ID, a.Baslik, a)
	return a, nil
}

func (s *Service) Guncelle(ctx context.Context, id string, girdi Girdi) (*model.Alarm, error) {
	if alanlar := girdi.dogrula(); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	mevcut, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mevcut == nil {
		return nil, model.NewNotFoundError("alarm", id)
	}

	onceki := *mevcut
	tetik := girdi.TetikZamani.UTC()
	mevcut.Baslik = girdi.Baslik
	mevcut.Aciklama = girdi.Aciklama
	mevcut.TetikZamani = tetik
	mevcut.WebhookURL = girdi.WebhookURL

	// Tetik zamanı değişen alarm yeniden kurulur; önceki hata sayacı
	// ve durdurulmuş durum sıfırlanır.
	if !onceki.TetikZamani.Equal(tetik) {
		mevcut.Durum = model.AlarmAktif
		mevcut.ArdisikHata = 0
		mevcut.HataMesaji = ""
		mevcut.SonrakiDeneme = &tetik
	}

	if err := s.repo.Update(ctx, mevcut); err != nil {
		return nil, err
	}
	s.denetim.LogUpdate(ctx, "alarm", mevcut.ID, mevcut.Baslik, &onceki, mevcut)
	return mevcut, nil
}

func (s *Service) Sil(ctx context.Context, id string) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return model.NewNotFoundError("alarm", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.denetim.LogDelete(ctx, "alarm", a.ID, a.Baslik, a)
	return nil
}

// Durdur alarmın bildirim göndermesini el ile keser.
func (s *Service) Durdur(ctx context.Context, id string) (*model.Alarm, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, model.NewNotFoundError("alarm", id)
	}
	if a.Durum == model.AlarmDurduruldu {
		return a, nil
	}

	onceki := *a
	a.Durum = model.AlarmDurduruldu
	a.SonrakiDeneme = nil
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.denetim.LogUpdate(ctx, "alarm", a.ID, a.Baslik, &onceki, a)
	return a, nil
}
