// Package katalog araç marka ve model taksonomisinin iş kurallarını
// içerir. Okuma herkese açıktır; yazma işlemleri yönetim yetkisi ister.
package katalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
)

// Service marka/model iş mantığı.
type Service struct {
	repo    repository.KatalogRepository
	denetim *audit.Kaydedici
}

func NewService(repo repository.KatalogRepository, denetim *audit.Kaydedici) *Service {
	return &Service{repo: repo, denetim: denetim}
}

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

func adDogrula(alan, ad string) (string, map[string]string) {
	ad = strings.TrimSpace(ad)
	if ad == "" {
		return ad, map[string]string{alan: "Ad zorunludur."}
	}
	if len(ad) > 100 {
		return ad, map[string]string{alan: "Ad 100 karakteri aşamaz."}
	}
	return ad, nil
}

func (s *Service) Markalar(ctx context.Context) ([]*model.Marka, error) {
	liste, err := s.repo.MarkaList(ctx)
	if err != nil {
		return nil, err
	}
	s.denetim.LogList(ctx, "marka", "", len(liste))
	return liste, nil
}

func (s *Service) MarkaOlustur(ctx context.Context, ad string) (*model.Marka, error) {
	if err := yonetimKontrol(ctx); err != nil {
		return nil, err
	}
	ad, alanlar := adDogrula("ad", ad)
	if alanlar != nil {
		return nil, model.NewValidationError(alanlar)
	}

	m := &model.Marka{ID: uuid.NewString(), Ad: ad}
	if err := s.repo.MarkaCreate(ctx, m); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu adla kayıtlı bir marka zaten var.")
		}
		return nil, err
	}
	s.denetim.LogCreate(ctx, "marka", m.ID, m.Ad, m)
	return m, nil
}

// MarkaSil modeli olmayan markayı siler. Modeli olan marka silinemez.
func (s *Service) MarkaSil(ctx context.Context, id string) error {
	if err := yonetimKontrol(ctx); err != nil {
		return err
	}

	m, err := s.repo.MarkaFindByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return model.NewNotFoundError("marka", id)
	}

	modelSayi, err := s.repo.ModelSayisi(ctx, id)
	if err != nil {
		return err
	}
	if modelSayi > 0 {
		return model.NewDependentsError("marka", model.IliskiSayimi{"modeller": modelSayi})
	}

	if err := s.repo.MarkaDelete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return model.NewDependentsError("marka", model.IliskiSayimi{"araclar": 1})
		}
		return err
	}
	s.denetim.LogDelete(ctx, "marka", m.ID, m.Ad, m)
	return nil
}

func (s *Service) Modeller(ctx context.Context, markaID string) ([]*model.AracModeli, error) {
	m, err := s.repo.MarkaFindByID(ctx, markaID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, model.NewNotFoundError("marka", markaID)
	}
	liste, err := s.repo.ModelList(ctx, markaID)
	if err != nil {
		return nil, err
	}
	s.denetim.LogList(ctx, "arac_modeli", m.Ad, len(liste))
	return liste, nil
}

func (s *Service) ModelOlustur(ctx context.Context, markaID, ad string) (*model.AracModeli, error) {
	if err := yonetimKontrol(ctx); err != nil {
		return nil, err
	}
	ad, alanlar := adDogrula("ad", ad)
	if alanlar != nil {
		return nil, model.NewValidationError(alanlar)
	}

	marka, err := s.repo.MarkaFindByID(ctx, markaID)
	if err != nil {
		return nil, err
	}
	if marka == nil {
		return nil, model.NewNotFoundError("marka", markaID)
	}

	m := &model.AracModeli{ID: uuid.NewString(), MarkaID: markaID, Ad: ad}
	if err := s.repo.ModelCreate(ctx, m); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu markada aynı adla bir model zaten var.")
		}
		return nil, err
	}
	s.denetim.LogCreate(ctx, "arac_modeli", m.ID, marka.Ad+" "+m.Ad, m)
	return m, nil
}

func (s *Service) ModelSil(ctx context.Context, id string) error {
	if err := yonetimKontrol(ctx); err != nil {
		return err
	}

	bulundu, err := s.repo.ModelDelete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return model.NewDependentsError("arac_modeli", model.IliskiSayimi{"araclar": 1})
		}
		return err
	}
	if !bulundu {
		return model.NewNotFoundError("arac_modeli", id)
	}
	s.denetim.LogDelete(ctx, "arac_modeli", id, "", nil)
	return nil
}
