package katalog

import (
	"context"
	"testing"

	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/model"
)

type sahteKatalogRepo struct {
	markalar map[string]*model.Marka
	modeller map[string]*model.AracModeli
}

func yeniSahteRepo() *sahteKatalogRepo {
	return &sahteKatalogRepo{markalar: map[string]*model.Marka{}, modeller: map[string]*model.AracModeli{}}
}

func (r *sahteKatalogRepo) MarkaFindByID(_ context.Context, id string) (*model.Marka, error) {
	return r.markalar[id], nil
}

func (r *sahteKatalogRepo) MarkaList(_ context.Context) ([]*model.Marka, error) {
	var sonuc []*model.Marka
	for _, m := range r.markalar {
		sonuc = append(sonuc, m)
	}
	return sonuc, nil
}

func (r *sahteKatalogRepo) MarkaCreate(_ context.Context, m *model.Marka) error {
	r.markalar[m.ID] = m
	return nil
}

func (r *sahteKatalogRepo) MarkaDelete(_ context.Context, id string) error {
	delete(r.markalar, id)
	return nil
}

func (r *sahteKatalogRepo) ModelSayisi(_ context.Context, markaID string) (int, error) {
	n := 0
	for _, m := range r.modeller {
		if m.MarkaID == markaID {
			n++
		}
	}
	return n, nil
}

func (r *sahteKatalogRepo) ModelList(_ context.Context, markaID string) ([]*model.AracModeli, error) {
	var sonuc []*model.AracModeli
	for _, m := range r.modeller {
		if m.MarkaID == markaID {
			sonuc = append(sonuc, m)
		}
	}
	return sonuc, nil
}

func (r *sahteKatalogRepo) ModelCreate(_ context.Context, m *model.AracModeli) error {
	r.modeller[m.ID] = m
	return nil
}

func (r *sahteKatalogRepo) ModelDelete(_ context.Context, id string) (bool, error) {
	if _, ok := r.modeller[id]; !ok {
		return false, nil
	}
	delete(r.modeller, id)
	return true, nil
}

type sahteDenetimRepo struct {
	kayitlar []*model.DenetimKaydi
}

func (r *sahteDenetimRepo) Append(_ context.Context, k *model.DenetimKaydi) error {
	r.kayitlar = append(r.kayitlar, k)
	return nil
}

func (r *sahteDenetimRepo) ListByEntity(_ context.Context, _, _ string, _ int) ([]*model.DenetimKaydi, error) {
	return r.kayitlar, nil
}

func yeniServis() (*Service, *sahteKatalogRepo) {
	s, repo, _ := yeniServisDenetimli()
	return s, repo
}

func yeniServisDenetimli() (*Service, *sahteKatalogRepo, *sahteDenetimRepo) {
	repo := yeniSahteRepo()
	denetimRepo := &sahteDenetimRepo{}
	return NewService(repo, audit.NewKaydedici(denetimRepo, nil, nil)), repo, denetimRepo
}

func adminContext() context.Context {
	return auth.ContextWithOturum(context.Background(), &auth.Oturum{
		PersonelID: "p1", AdSoyad: "Admin", Rol: model.RolAdmin,
	})
}

func staffContext() context.Context {
	return auth.ContextWithOturum(context.Background(), &auth.Oturum{
		PersonelID: "p2", AdSoyad: "Staff", Rol: model.RolStaff,
	})
}

func kodKontrol(t *testing.T, err error, kod string) {
	t.Helper()
	apiErr, ok := err.(*model.APIError)
	if !ok {
		t.Fatalf("APIError bekleniyordu, gelen: %T (%v)", err, err)
	}
	if apiErr.Code != kod {
		t.Errorf("kod = %s, beklenen %s", apiErr.Code, kod)
	}
}

func TestMarkaOlusturStaffReddedilir(t *testing.T) {
	s, _ := yeniServis()
	_, err := s.MarkaOlustur(staffContext(), "Renault")
	kodKontrol(t, err, model.ErrCodeForbidden)
}

func TestMarkaSilModelVarkenReddedilir(t *testing.T) {
	s, repo := yeniServis()
	repo.markalar["m1"] = &model.Marka{ID: "m1", Ad: "Renault"}
	repo.modeller["md1"] = &model.AracModeli{ID: "md1", MarkaID: "m1", Ad: "Clio"}

	err := s.MarkaSil(adminContext(), "m1")
	kodKontrol(t, err, model.ErrCodeDependents)
	if repo.markalar["m1"] == nil {
		t.Error("modeli olan marka silinmemeli")
	}
}

func TestModelOlusturVeSil(t *testing.T) {
	s, repo := yeniServis()
	repo.markalar["m1"] = &model.Marka{ID: "m1", Ad: "Renault"}

	md, err := s.ModelOlustur(adminContext(), "m1", "Clio")
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if md.MarkaID != "m1" {
		t.Errorf("markaID = %s", md.MarkaID)
	}

	if err := s.ModelSil(adminContext(), md.ID); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if err := s.ModelSil(adminContext(), md.ID); err == nil {
		t.Error("silinmiş model için NOT_FOUND bekleniyordu")
	}
}

func TestModelOlusturMarkaYok(t *testing.T) {
	s, _ := yeniServis()
	_, err := s.ModelOlustur(adminContext(), "yok", "Clio")
	kodKontrol(t, err, model.ErrCodeNotFound)
}

func TestMarkaAdiBos(t *testing.T) {
	s, _ := yeniServis()
	_, err := s.MarkaOlustur(adminContext(), "   ")
	kodKontrol(t, err, model.ErrCodeValidation)
}

func TestOkumalarDenetimYazar(t *testing.T) {
	s, repo, denetimRepo := yeniServisDenetimli()
	repo.markalar["m1"] = &model.Marka{ID: "m1", Ad: "Renault"}

	if _, err := s.Markalar(staffContext()); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if _, err := s.Modeller(staffContext(), "m1"); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}

	if len(denetimRepo.kayitlar) != 2 {
		t.Fatalf("2 denetim kaydı bekleniyordu, gelen: %d", len(denetimRepo.kayitlar))
	}
	if denetimRepo.kayitlar[0].Eylem != model.DenetimList || denetimRepo.kayitlar[0].Etiket != "sonuc=1" {
		t.Errorf("marka listesi sonuç sayısını taşımalı: %+v", denetimRepo.kayitlar[0])
	}
	if denetimRepo.kayitlar[1].Eylem != model.DenetimList || denetimRepo.kayitlar[1].EntityTipi != "arac_modeli" {
		t.Errorf("model listesi LIST olmalı: %+v", denetimRepo.kayitlar[1])
	}
}
