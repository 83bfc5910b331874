package personel

import (
	"context"
	"testing"

	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/model"
)

type sahtePersonelRepo struct {
	personeller map[string]*model.Personel
	takipler    map[string]int
}

func yeniSahteRepo() *sahtePersonelRepo {
	return &sahtePersonelRepo{personeller: map[string]*model.Personel{}, takipler: map[string]int{}}
}

func (r *sahtePersonelRepo) FindByID(_ context.Context, id string) (*model.Personel, error) {
	return r.personeller[id], nil
}

func (r *sahtePersonelRepo) FindByKullaniciAdi(_ context.Context, kullaniciAdi string) (*model.Personel, error) {
	for _, p := range r.personeller {
		if p.KullaniciAdi == kullaniciAdi {
			return p, nil
		}
	}
	return nil, nil
}

func (r *sahtePersonelRepo) List(_ context.Context, _ model.ListeSecenekleri) ([]*model.Personel, int, error) {
	var sonuc []*model.Personel
	for _, p := range r.personeller {
		sonuc = append(sonuc, p)
	}
	return sonuc, len(sonuc), nil
}

func (r *sahtePersonelRepo) Create(_ context.Context, p *model.Personel) error {
	r.personeller[p.ID] = p
	return nil
}

func (r *sahtePersonelRepo) Update(_ context.Context, p *model.Personel) error {
	r.personeller[p.ID] = p
	return nil
}

func (r *sahtePersonelRepo) Delete(_ context.Context, id string) error {
	delete(r.personeller, id)
	return nil
}

func (r *sahtePersonelRepo) TakipSayisi(_ context.Context, id string) (int, error) {
	return r.takipler[id], nil
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

func yeniServis(t *testing.T) (*Service, *sahtePersonelRepo, *sahteDenetimRepo) {
	t.Helper()
	repo := yeniSahteRepo()
	denetimRepo := &sahteDenetimRepo{}
	return NewService(repo, audit.NewKaydedici(denetimRepo, nil, nil)), repo, denetimRepo
}

func kayitliPersonel(t *testing.T, repo *sahtePersonelRepo, id, kullaniciAdi, parola string, rol model.Rol, aktif bool) {
	t.Helper()
	ozet, err := auth.ParolaOzetle(parola)
	if err != nil {
		t.Fatalf("parola özetlenemedi: %v", err)
	}
	repo.personeller[id] = &model.Personel{
		ID: id, KullaniciAdi: kullaniciAdi, AdSoyad: "Test " + kullaniciAdi,
		Rol: rol, ParolaOzeti: ozet, Aktif: aktif,
	}
}

func adminContext(id string) context.Context {
	return auth.ContextWithOturum(context.Background(), &auth.Oturum{
		PersonelID: id, AdSoyad: "Admin", Rol: model.RolAdmin,
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

func TestLoginBasarili(t *testing.T) {
	s, repo, denetimRepo := yeniServis(t)
	kayitliPersonel(t, repo, "p1", "ali", "cokgizli123", model.RolStaff, true)

	p, err := s.Login(context.Background(), "ali", "cokgizli123")
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("personel = %+v", p)
	}
	if len(denetimRepo.kayitlar) != 1 || denetimRepo.kayitlar[0].Eylem != model.DenetimLogin {
		t.Errorf("LOGIN denetim kaydı bekleniyordu: %+v", denetimRepo.kayitlar)
	}
}

func TestLoginYanlisParola(t *testing.T) {
	s, repo, denetimRepo := yeniServis(t)
	kayitliPersonel(t, repo, "p1", "ali", "cokgizli123", model.RolStaff, true)

	_, err := s.Login(context.Background(), "ali", "yanlis")
	kodKontrol(t, err, model.ErrCodeAuthRequired)
	if len(denetimRepo.kayitlar) != 1 || denetimRepo.kayitlar[0].Eylem != model.DenetimLoginFail {
		t.Errorf("LOGIN_FAIL denetim kaydı bekleniyordu: %+v", denetimRepo.kayitlar)
	}
}

func TestLoginPasifHesap(t *testing.T) {
	s, repo, _ := yeniServis(t)
	kayitliPersonel(t, repo, "p1", "ali", "cokgizli123", model.RolStaff, false)

	_, err := s.Login(context.Background(), "ali", "cokgizli123")
	kodKontrol(t, err, model.ErrCodeAuthRequired)
}

func TestLoginOlmayanKullaniciAyniMesaj(t *testing.T) {
	s, repo, _ := yeniServis(t)
	kayitliPersonel(t, repo, "p1", "ali", "cokgizli123", model.RolStaff, true)

	_, errYok := s.Login(context.Background(), "bilinmeyen", "cokgizli123")
	_, errParola := s.Login(context.Background(), "ali", "yanlis")

	// Kullanıcı adı mı parola mı yanlış, mesajdan anlaşılmamalı.
	if errYok.Error() != errParola.Error() {
		t.Errorf("mesajlar farklı: %q / %q", errYok.Error(), errParola.Error())
	}
}

func TestOlusturAdminGerektirir(t *testing.T) {
	s, _, _ := yeniServis(t)

	staff := auth.ContextWithOturum(context.Background(), &auth.Oturum{
		PersonelID: "p2", AdSoyad: "Staff", Rol: model.RolStaff,
	})
	_, err := s.Olustur(staff, Girdi{KullaniciAdi: "yeni", AdSoyad: "Yeni", Rol: model.RolStaff, Parola: "cokgizli123"})
	kodKontrol(t, err, model.ErrCodeForbidden)
}

func TestOlusturParolaOzetlenir(t *testing.T) {
	s, repo, _ := yeniServis(t)

	p, err := s.Olustur(adminContext("p0"), Girdi{
		KullaniciAdi: "yeni", AdSoyad: "Yeni Personel", Rol: model.RolStaff, Parola: "cokgizli123",
	})
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	saklanan := repo.personeller[p.ID]
	if saklanan.ParolaOzeti == "cokgizli123" {
		t.Error("parola düz metin saklanmamalı")
	}
	if auth.ParolaDogrula(saklanan.ParolaOzeti, "cokgizli123") != nil {
		t.Error("saklanan özet parolayı doğrulamalı")
	}
}

func TestKendiHesabiniSilemez(t *testing.T) {
	s, repo, _ := yeniServis(t)
	kayitliPersonel(t, repo, "p1", "admin", "cokgizli123", model.RolAdmin, true)

	err := s.Sil(adminContext("p1"), "p1")
	kodKontrol(t, err, model.ErrCodeValidation)
}

func TestSilTakipVarkenReddedilir(t *testing.T) {
	s, repo, _ := yeniServis(t)
	kayitliPersonel(t, repo, "p1", "admin", "cokgizli123", model.RolAdmin, true)
	kayitliPersonel(t, repo, "p2", "ali", "cokgizli123", model.RolStaff, true)
	repo.takipler["p2"] = 4

	err := s.Sil(adminContext("p1"), "p2")
	kodKontrol(t, err, model.ErrCodeDependents)
}

func TestKendiRolunuDusuremez(t *testing.T) {
	s, repo, _ := yeniServis(t)
	kayitliPersonel(t, repo, "p1", "admin", "cokgizli123", model.RolAdmin, true)

	_, err := s.Guncelle(adminContext("p1"), "p1", Girdi{
		AdSoyad: "Admin", Rol: model.RolStaff,
	})
	kodKontrol(t, err, model.ErrCodeValidation)
}

func TestOkumalarDenetimYazar(t *testing.T) {
	s, repo, denetimRepo := yeniServis(t)
	kayitliPersonel(t, repo, "p2", "ayse", "cokgizli123", model.RolStaff, true)

	if _, err := s.Getir(adminContext("p1"), "p2"); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if _, _, err := s.Listele(adminContext("p1"), model.ListeSecenekleri{}); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}

	if len(denetimRepo.kayitlar) != 2 {
		t.Fatalf("2 denetim kaydı bekleniyordu, gelen: %d", len(denetimRepo.kayitlar))
	}
	if denetimRepo.kayitlar[0].Eylem != model.DenetimView || denetimRepo.kayitlar[0].EntityID != "p2" {
		t.Errorf("ilk kayıt VIEW olmalı: %+v", denetimRepo.kayitlar[0])
	}
	if denetimRepo.kayitlar[1].Eylem != model.DenetimList || denetimRepo.kayitlar[1].Etiket != "sonuc=1" {
		t.Errorf("liste kaydı sonuç sayısını taşımalı: %+v", denetimRepo.kayitlar[1])
	}
}
