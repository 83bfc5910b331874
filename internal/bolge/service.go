// Package bolge hiyerarşik bölge taksonomisinin iş kurallarını içerir.
// Okuma herkese açıktır; yazma işlemleri yönetim yetkisi ister.
package bolge

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
)

// Service bölge iş mantığı.
type Service struct {
	repo    repository.BolgeRepository
	denetim *audit.Kaydedici
}

func NewService(repo repository.BolgeRepository, denetim *audit.Kaydedici) *Service {
	return &Service{repo: repo, denetim: denetim}
}

// Girdi oluşturma ve güncelleme isteklerinin gövdesi.
type Girdi struct {
	Ad         string  `json:"ad"`
	UstBolgeID *string `json:"ustBolgeId"`
}

func (g *Girdi) dogrula() map[string]string {
	alanlar := map[string]string{}
	g.Ad = strings.TrimSpace(g.Ad)
	if g.Ad == "" {
		alanlar["ad"] = "Bölge adı zorunludur."
	} else if len(g.Ad) > 100 {
		alanlar["ad"] = "Bölge adı 100 karakteri aşamaz."
	}
	return alanlar
}

// yonetimKontrol yazma işlemleri için ADMIN veya MANAGER rolü arar.
func yonetimKontrol(ctx context.Context) error {
	oturum, ok := auth.OturumFromContext(ctx)
	if !ok {
		return model.NewAuthRequiredError()
	}
	if !oturum.Rol.YonetimYetkisi() {
		return model.NewForbiddenError()
	}
	return nil
}

func (s *Service) Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Bolge, int, error) {
	liste, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	s.denetim.LogList(ctx, "bolge", opts.Search, total)
	return liste, total, nil
}

func (s *Service) Getir(ctx context.Context, id string) (*model.Bolge, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, model.NewNotFoundError("bolge", id)
	}
	s.denetim.LogView(ctx, "bolge", b.ID, b.Ad)
	return b, nil
}

func (s *Service) Olustur(ctx context.Context, girdi Girdi) (*model.Bolge, error) {
	if err := yonetimKontrol(ctx); err != nil {
		return nil, err
	}
	if alanlar := girdi.dogrula(); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	if girdi.UstBolgeID != nil {
		ust, err := s.repo.FindByID(ctx, *girdi.UstBolgeID)
		if err != nil {
			return nil, err
		}
		if ust == nil {
			return nil, model.NewValidationError(map[string]string{
				"ustBolgeId": "Üst bölge bulunamadı.",
			})
		}
	}

	b := &model.Bolge{
		ID:         uuid.NewString(),
		Ad:         girdi.Ad,
		UstBolgeID: girdi.UstBolgeID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu adla kayıtlı bir bölge zaten var.")
		}
		return nil, err
	}
	s.denetim.LogCreate(ctx, "bolge", b.ID, b.Ad, b)
	return b, nil
}

func (s *Service) Guncelle(ctx context.Context, id string, girdi Girdi) (*model.Bolge, error) {
	if err := yonetimKontrol(ctx); err != nil {
		return nil, err
	}
	if alanlar := girdi.dogrula(); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	mevcut, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mevcut == nil {
		return nil, model.NewNotFoundError("bolge", id)
	}

	// Bölge kendi üst bölgesi olamaz.
	if girdi.UstBolgeID != nil && *girdi.UstBolgeID == id {
		return nil, model.NewValidationError(map[string]string{
			"ustBolgeId": "Bölge kendisinin üst bölgesi olamaz.",
		})
	}

	onceki := *mevcut
	mevcut.Ad = girdi.Ad
	mevcut.UstBolgeID = girdi.UstBolgeID

	if err := s.repo.Update(ctx, mevcut); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu adla kayıtlı bir bölge zaten var.")
		}
		return nil, err
	}
	s.denetim.LogUpdate(ctx, "bolge", mevcut.ID, mevcut.Ad, &onceki, mevcut)
	return mevcut, nil
}

// Sil alt bölgesi olmayan bölgeyi siler. Alt bölge varsa silme
// reddedilir; arşivleme taksonomi kayıtlarında uygulanmaz.
func (s *Service) Sil(ctx context.Context, id string) error {
	if err := yonetimKontrol(ctx); err != nil {
		return err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return model.NewNotFoundError("bolge", id)
	}

	altSayi, err := s.repo.AltBolgeSayisi(ctx, id)
	if err != nil {
		return err
	}
	if altSayi > 0 {
		return model.NewDependentsError("bolge", model.IliskiSayimi{"altBolgeler": altSayi})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return model.NewDependentsError("bolge", model.IliskiSayimi{"adresler": 1})
		}
		return err
	}
	s.denetim.LogDelete(ctx, "bolge", b.ID, b.Ad, b)
	return nil
}
