// Package personel kullanıcı hesapları ve kimlik doğrulama iş
// kurallarını içerir. Hesap yönetimi yalnızca ADMIN rolüne açıktır.
package personel

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
)

// Service personel iş mantığı.
type Service struct {
	repo    repository.PersonelRepository
	denetim *audit.Kaydedici
}

func NewService(repo repository.PersonelRepository, denetim *audit.Kaydedici) *Service {
	return &Service{repo: repo, denetim: denetim}
}

func adminKontrol(ctx context.Context) error {
	oturum, ok := auth.OturumFromContext(ctx)
	if !ok {
		return model.NewAuthRequiredError()
	}
	if oturum.Rol != model.RolAdmin {
		return model.NewForbiddenError()
	}
	return nil
}

// girisHatasi kullanıcı adı ve parola hataları için tek tip mesaj.
// Hangi alanın yanlış olduğu dışarı sızdırılmaz.
func girisHatasi() *model.APIError {
	return &model.APIError{
		Code:     model.ErrCodeAuthRequired,
		Message:  "Kullanıcı adı veya parola hatalı.",
		Category: "auth",
		Action:   "Bilgilerinizi kontrol edip tekrar deneyin.",
	}
}

// Login kimlik bilgilerini doğrular ve personeli döndürür.
// Başarısız her deneme denetim kaydına yazılır.
func (s *Service) Login(ctx context.Context, kullaniciAdi, parola string) (*model.Personel, error) {
	kullaniciAdi = strings.TrimSpace(kullaniciAdi)
	if kullaniciAdi == "" || parola == "" {
		return nil, girisHatasi()
	}

	p, err := s.repo.FindByKullaniciAdi(ctx, kullaniciAdi)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Aktif {
		s.denetim.LogLoginFail(ctx, kullaniciAdi)
		return nil, girisHatasi()
	}
	if auth.ParolaDogrula(p.ParolaOzeti, parola) != nil {
		s.denetim.LogLoginFail(ctx, kullaniciAdi)
		return nil, girisHatasi()
	}

	s.denetim.LogLogin(ctx, p)
	return p, nil
}

// Girdi hesap oluşturma ve güncelleme isteklerinin gövdesi.
type Girdi struct {
	KullaniciAdi string    `json:"kullaniciAdi"`
	AdSoyad      string    `json:"adSoyad"`
	Rol          model.Rol `json:"rol"`
	Parola       string    `json:"parola"`
	Aktif        *bool     `json:"aktif"`
}

func (g *Girdi) dogrula(yeniKayit bool) map[string]string {
	alanlar := map[string]string{}
	g.KullaniciAdi = strings.TrimSpace(g.KullaniciAdi)
	g.AdSoyad = strings.TrimSpace(g.AdSoyad)

	if yeniKayit {
		if len(g.KullaniciAdi) < 3 || len(g.KullaniciAdi) > 50 {
			alanlar["kullaniciAdi"] = "Kullanıcı adı 3 ile 50 karakter arasında olmalıdır."
		}
		if len(g.Parola) < 8 {
			alanlar["parola"] = "Parola en az 8 karakter olmalıdır."
		}
	} else if g.Parola != "" && len(g.Parola) < 8 {
		alanlar["parola"] = "Parola en az 8 karakter olmalıdır."
	}
	if g.AdSoyad == "" {
		alanlar["adSoyad"] = "Ad soyad zorunludur."
	}
	if !g.Rol.Gecerli() {
		alanlar["rol"] = "Rol ADMIN, MANAGER veya STAFF olmalıdır."
	}
	return alanlar
}

func (s *Service) Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Personel, int, error) {
	if err := adminKontrol(ctx); err != nil {
		return nil, 0, err
	}
	liste, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	s.denetim.LogList(ctx, "personel", opts.Search, total)
	return liste, total, nil
}

func (s *Service) Getir(ctx context.Context, id string) (*model.Personel, error) {
	if err := adminKontrol(ctx); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewNotFoundError("personel", id)
	}
	s.denetim.LogView(ctx, "personel", p.ID, p.KullaniciAdi)
	return p, nil
}

// Ben oturumdaki personelin kendi kaydını döndürür; rol kısıtı yoktur.
func (s *Service) Ben(ctx context.Context) (*model.Personel, error) {
	oturum, ok := auth.OturumFromContext(ctx)
	if !ok {
		return nil, model.NewAuthRequiredError()
	}
	p, err := s.repo.FindByID(ctx, oturum.PersonelID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewNotFoundError("personel", oturum.PersonelID)
	}
	return p, nil
}

func (s *Service) Olustur(ctx context.Context, girdi Girdi) (*model.Personel, error) {
	if err := adminKontrol(ctx); err != nil {
		return nil, err
	}
	if alanlar := girdi.dogrula(true); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	ozet, err := auth.ParolaOzetle(girdi.Parola)
	if err != nil {
		return nil, err
	}
	p := &model.Personel{
		ID:           uuid.NewString(),
		KullaniciAdi: girdi.KullaniciAdi,
		AdSoyad:      girdi.AdSoyad,
		Rol:          girdi.Rol,
		ParolaOzeti:  ozet,
		Aktif:        true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu kullanıcı adı zaten kayıtlı.")
		}
		return nil, err
	}
	s.denetim.LogCreate(ctx, "personel", p.ID, p.KullaniciAdi, p)
	return p, nil
}

func (s *Service) Guncelle(ctx context.Context, id string, girdi Girdi) (*model.Personel, error) {
	if err := adminKontrol(ctx); err != nil {
		return nil, err
	}
	if alanlar := girdi.dogrula(false); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	mevcut, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mevcut == nil {
		return nil, model.NewNotFoundError("personel", id)
	}

	// Admin kendi hesabını pasifleştiremez veya rolünü düşüremez;
	// sistem adminsiz kalabilir.
	if oturum, ok := auth.OturumFromContext(ctx); ok && oturum.PersonelID == id {
		if girdi.Rol != model.RolAdmin || (girdi.Aktif != nil && !*girdi.Aktif) {
			return nil, model.NewValidationError(map[string]string{
				"rol": "Kendi hesabınızın rolünü veya aktifliğini değiştiremezsiniz.",
			})
		}
	}

	onceki := *mevcut
	mevcut.AdSoyad = girdi.AdSoyad
	mevcut.Rol = girdi.Rol
	if girdi.Aktif != nil {
		mevcut.Aktif = *girdi.Aktif
	}
	if girdi.Parola != "" {
		ozet, err := auth.ParolaOzetle(girdi.Parola)
		if err != nil {
			return nil, err
		}
		mevcut.ParolaOzeti = ozet
	}

	if err := s.repo.Update(ctx, mevcut); err != nil {
		return nil, err
	}
	s.denetim.LogUpdate(ctx, "personel", mevcut.ID, mevcut.KullaniciAdi, &onceki, mevcut)
	return mevcut, nil
}

// Sil takip kaydı olmayan personeli siler. Takip atanmış personel
// silinemez; hesap pasifleştirilmelidir.
func (s *Service) Sil(ctx context.Context, id string) error {
	if err := adminKontrol(ctx); err != nil {
		return err
	}
	if oturum, ok := auth.OturumFromContext(ctx); ok && oturum.PersonelID == id {
		return model.NewValidationError(map[string]string{
			"id": "Kendi hesabınızı silemezsiniz.",
		})
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return model.NewNotFoundError("personel", id)
	}

	takipSayi, err := s.repo.TakipSayisi(ctx, id)
	if err != nil {
		return err
	}
	if takipSayi > 0 {
		return model.NewDependentsError("personel", model.IliskiSayimi{"takipler": takipSayi})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return model.NewDependentsError("personel", model.IliskiSayimi{"kayitlar": 1})
		}
		return err
	}
	s.denetim.LogDelete(ctx, "personel", p.ID, p.KullaniciAdi, p)
	return nil
}
