package workspace

import (
	"context"

	"github.com/altay-yazilim/bplani/internal/repository"
)

// Tercih anahtarları. Locale ve tema çalışma alanı snapshot'ından
// ayrı anahtarlar altında saklanır.
const (
	tercihAnahtari = "calisma_alani"
	localeAnahtari = "locale"
	temaAnahtari   = "tema"
)

// Service çalışma alanını kullanıcı başına yükler ve saklar.
type Service struct {
	tercihler repository.TercihRepository
}

func NewService(tercihler repository.TercihRepository) *Service {
	return &Service{tercihler: tercihler}
}

// Yukle kullanıcının çalışma alanını getirir. Kayıt yoksa veya
// snapshot bozuksa boş çalışma alanı döndürülür; bozuk snapshot
// kullanıcıyı kilitlemez.
func (s *Service) Yukle(ctx context.Context, personelID string) (*CalismaAlani, error) {
	veri, err := s.tercihler.Get(ctx, personelID, tercihAnahtari)
	if err != nil {
		return nil, err
	}
	c, err := YukleSnapshot(veri)
	if err != nil {
		return Yeni(), nil
	}
	return c, nil
}

// Kaydet çalışma alanını kullanıcının tercihine yazar.
func (s *Service) Kaydet(ctx context.Context, personelID string, c *CalismaAlani) error {
	veri, err := c.Snapshot()
	if err != nil {
		return err
	}
	return s.tercihler.Set(ctx, personelID, tercihAnahtari, veri)
}

// Tercihler kullanıcının locale ve tema seçimidir.
type Tercihler struct {
	Locale string `json:"locale,omitempty"`
	Tema   string `json:"tema,omitempty"`
}

// TercihleriYukle locale ve tema tercihlerini getirir. Kayıt yoksa
// alanlar boş döner; varsayılanlar istemcide uygulanır.
func (s *Service) TercihleriYukle(ctx context.Context, personelID string) (Tercihler, error) {
	var t Tercihler
	locale, err := s.tercihler.Get(ctx, personelID, localeAnahtari)
	if err != nil {
		return t, err
	}
	tema, err := s.tercihler.Get(ctx, personelID, temaAnahtari)
	if err != nil {
		return t, err
	}
	t.Locale = string(locale)
	t.Tema = string(tema)
	return t, nil
}

// TercihleriKaydet yalnızca dolu gelen alanları yazar.
func (s *Service) TercihleriKaydet(ctx context.Context, personelID string, t Tercihler) error {
	if t.Locale != "" {
		if err := s.tercihler.Set(ctx, personelID, localeAnahtari, []byte(t.Locale)); err != nil {
			return err
		}
	}
	if t.Tema != "" {
		if err := s.tercihler.Set(ctx, personelID, temaAnahtari, []byte(t.Tema)); err != nil {
			return err
		}
	}
	return nil
}
