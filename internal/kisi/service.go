// Package kisi kişi kayıtları, telefon alt kaynağı ve toplu silme iş
// kurallarını içerir.
package kisi

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/audit"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
	"github.com/altay-yazilim/bplani/internal/security"
)

// BatchTavan tek toplu silme isteğinde kabul edilen azami kimlik sayısı.
const BatchTavan = 100

// PersonelBulucu oturumdaki kimliğin hâlâ kayıtlı olduğunu doğrulamak
// için kullanılan dar yüzeydir.
type PersonelBulucu interface {
	FindByID(ctx context.Context, id string) (*model.Personel, error)
}

// Service kişi iş mantığı.
type Service struct {
	repo        repository.KisiRepository
	denetim     *audit.Kaydedici
	sanitizer   security.Sanitizer
	personeller PersonelBulucu
}

func NewService(repo repository.KisiRepository, denetim *audit.Kaydedici, sanitizer security.Sanitizer, personeller PersonelBulucu) *Service {
	return &Service{repo: repo, denetim: denetim, sanitizer: sanitizer, personeller: personeller}
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
	Ad       string `json:"ad"`
	Soyad    string `json:"soyad"`
	KimlikNo string `json:"kimlikNo"`
	Notlar   string `json:"notlar"`
}

func (g *Girdi) dogrula() map[string]string {
	alanlar := map[string]string{}
	g.Ad = strings.TrimSpace(g.Ad)
	g.Soyad = strings.TrimSpace(g.Soyad)
	g.KimlikNo = strings.TrimSpace(g.KimlikNo)

	if g.Ad == "" {
		alanlar["ad"] = "Ad zorunludur."
	} else if len(g.Ad) > 100 {
		alanlar["ad"] = "Ad 100 karakteri aşamaz."
	}
	if g.Soyad == "" {
		alanlar["soyad"] = "Soyad zorunludur."
	} else if len(g.Soyad) > 100 {
		alanlar["soyad"] = "Soyad 100 karakteri aşamaz."
	}
	if g.KimlikNo != "" && !kimlikGecerli(g.KimlikNo) {
		alanlar["kimlikNo"] = "Kimlik numarası 11 rakamdan oluşmalıdır."
	}
	if len(g.Notlar) > 10000 {
		alanlar["notlar"] = "Notlar 10000 karakteri aşamaz."
	}
	return alanlar
}

func kimlikGecerli(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func etiket(k *model.Kisi) string {
	return strings.TrimSpace(k.Ad + " " + k.Soyad)
}

func (s *Service) Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Kisi, int, error) {
	liste, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	s.denetim.LogList(ctx, "kisi", opts.Search, total)
	return liste, total, nil
}

func (s *Service) Getir(ctx context.Context, id string) (*model.Kisi, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, model.NewNotFoundError("kisi", id)
	}
	s.denetim.LogView(ctx, "kisi", k.ID, etiket(k))
	return k, nil
}

func (s *Service) Olustur(ctx context.Context, girdi Girdi, olusturanID string) (*model.Kisi, error) {
	if alanlar := girdi.dogrula(); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	k := &model.Kisi{
		ID:          uuid.NewString(),
		Ad:          girdi.Ad,
		Soyad:       girdi.Soyad,
		KimlikNo:    girdi.KimlikNo,
		Notlar:      s.sanitizer.Sanitize(girdi.Notlar),
		OlusturanID: s.cozOlusturan(ctx, olusturanID),
	}
	if err := s.repo.Create(ctx, k); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu kimlik numarası ile kayıtlı bir kişi zaten var.")
		}
		return nil, err
	}
	s.denetim.LogCreate(ctx, "kisi", k.ID, etiket(k), k)
	return k, nil
}

func (s *Service) Guncelle(ctx context.Context, id string, girdi Girdi) (*model.Kisi, error) {
	if alanlar := girdi.dogrula(); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	mevcut, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mevcut == nil {
		return nil, model.NewNotFoundError("kisi", id)
	}

	onceki := *mevcut
	mevcut.Ad = girdi.Ad
	mevcut.Soyad = girdi.Soyad
	mevcut.KimlikNo = girdi.KimlikNo
	mevcut.Notlar = s.sanitizer.Sanitize(girdi.Notlar)

	if err := s.repo.Update(ctx, mevcut); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu kimlik numarası ile kayıtlı bir kişi zaten var.")
		}
		return nil, err
	}
	s.denetim.LogUpdate(ctx, "kisi", mevcut.ID, etiket(mevcut), &onceki, mevcut)
	return mevcut, nil
}

// Sil bağımlı ilişkisi olmayan kişiyi kalıcı siler. Bağımlı ilişki
// varsa silme reddedilir; istemci arşivlemeyi ayrıca seçmelidir.
func (s *Service) Sil(ctx context.Context, id string) error {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if k == nil {
		return model.NewNotFoundError("kisi", id)
	}

	sayim, err := s.repo.IliskiSayilari(ctx, id)
	if err != nil {
		return err
	}
	if sayim.BagimliVar() {
		return model.NewDependentsError("kisi", sayim)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.denetim.LogDelete(ctx, "kisi", k.ID, etiket(k), k)
	return nil
}

// Arsivle kişiyi arşivler; listelerden düşer ama kaydı kalır.
func (s *Service) Arsivle(ctx context.Context, id string) (*model.Kisi, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, model.NewNotFoundError("kisi", id)
	}
	if k.Arsivlendi {
		return k, nil
	}
	k.Arsivlendi = true
	if err := s.repo.Update(ctx, k); err != nil {
		return nil, err
	}
	s.denetim.LogArchive(ctx, "kisi", k.ID, etiket(k))
	return k, nil
}

// BatchSil kimlik kümesini arşivle/sil bölüntüsüyle işler.
// Bağımlı ilişkisi olan kayıtlar arşivlenir, olmayanlar kalıcı silinir;
// tamamı tek atomik işlemdir.
func (s *Service) BatchSil(ctx context.Context, ids []string) (model.BatchSonuc, error) {
	if len(ids) == 0 {
		return model.BatchSonuc{}, model.NewValidationError(map[string]string{
			"ids": "En az bir kimlik gereklidir.",
		})
	}
	if len(ids) > BatchTavan {
		return model.BatchSonuc{}, model.NewValidationError(map[string]string{
			"ids": fmt.Sprintf("Tek istekte en fazla %d kayıt silinebilir.", BatchTavan),
		})
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return model.BatchSonuc{}, model.NewValidationError(map[string]string{
				"ids": "Boş kimlik değeri kabul edilmez.",
			})
		}
	}

	sonuc, err := s.repo.BatchSil(ctx, ids)
	if err != nil {
		return model.BatchSonuc{}, err
	}
	s.denetim.LogDelete(ctx, "kisi", "", fmt.Sprintf("toplu: %d kayıt", len(ids)), sonuc)
	return sonuc, nil
}

// TelefonGirdisi telefon alt kaynağının gövdesi.
type TelefonGirdisi struct {
	Numara string `json:"numara"`
	Etiket string `json:"etiket"`
}

func (g *TelefonGirdisi) dogrula() map[string]string {
	alanlar := map[string]string{}
	g.Numara = strings.TrimSpace(g.Numara)
	if g.Numara == "" {
		alanlar["numara"] = "Telefon numarası zorunludur."
	} else if len(g.Numara) > 32 {
		alanlar["numara"] = "Telefon numarası 32 karakteri aşamaz."
	}
	if len(g.Etiket) > 50 {
		alanlar["etiket"] = "Etiket 50 karakteri aşamaz."
	}
	return alanlar
}

func (s *Service) Telefonlar(ctx context.Context, kisiID string) ([]*model.Telefon, error) {
	k, err := s.repo.FindByID(ctx, kisiID)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, model.NewNotFoundError("kisi", kisiID)
	}
	return s.repo.Telefonlar(ctx, kisiID)
}

func (s *Service) TelefonEkle(ctx context.Context, kisiID string, girdi TelefonGirdisi) (*model.Telefon, error) {
	if alanlar := girdi.dogrula(); len(alanlar) > 0 {
		return nil, model.NewValidationError(alanlar)
	}

	k, err := s.repo.FindByID(ctx, kisiID)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, model.NewNotFoundError("kisi", kisiID)
	}

	t := &model.Telefon{
		ID:     uuid.NewString(),
		KisiID: kisiID,
		Numara: girdi.Numara,
		Etiket: girdi.Etiket,
	}
	if err := s.repo.TelefonEkle(ctx, t); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError("Bu numara kişide zaten kayıtlı.")
		}
		return nil, err
	}
	s.denetim.LogUpdate(ctx, "kisi", kisiID, etiket(k), nil, t)
	return t, nil
}

func (s *Service) TelefonSil(ctx context.Context, kisiID, telefonID string) error {
	k, err := s.repo.FindByID(ctx, kisiID)
	if err != nil {
		return err
	}
	if k == nil {
		return model.NewNotFoundError("kisi", kisiID)
	}

	bulundu, err := s.repo.TelefonSil(ctx, telefonID)
	if err != nil {
		return err
	}
	if !bulundu {
		return model.NewNotFoundError("telefon", telefonID)
	}
	s.denetim.LogUpdate(ctx, "kisi", kisiID, etiket(k), nil, nil)
	return nil
}

// IliskiSayilari kişinin bağımlı ilişki sayılarını döndürür.
// İstemci silme onayı öncesi uyarı göstermek için kullanır.
func (s *Service) IliskiSayilari(ctx context.Context, id string) (model.IliskiSayimi, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, model.NewNotFoundError("kisi", id)
	}
	return s.repo.IliskiSayilari(ctx, id)
}
