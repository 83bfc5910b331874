// Package upload kişi kayıtlarına eklenen dosyaların diske yazılmasını
// ve servis edilmesini sağlar.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/model"
)

// izinliTipler kabul edilen MIME tiplerinin dosya uzantısı eşlemesi.
// Tip tespiti istemcinin beyanına değil dosya içeriğine bakar.
var izinliTipler = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Store yüklenen dosyaları yerel diske yazar.
type Store struct {
	dizin      string
	boyutTavan int64
}

// NewStore verilen dizini oluşturup store döndürür.
func NewStore(dizin string, boyutTavan int64) (*Store, error) {
	if boyutTavan <= 0 {
		boyutTavan = 5 << 20
	}
	if err := os.MkdirAll(dizin, 0o755); err != nil {
		return nil, fmt.Errorf("yükleme dizini oluşturulamadı: %w", err)
	}
	return &Store{dizin: dizin, boyutTavan: boyutTavan}, nil
}

// Sonuc başarılı yüklemenin özetidir.
type Sonuc struct {
	DosyaAdi string `json:"dosyaAdi"`
	URL      string `json:"url"`
	Boyut    int64  `json:"boyut"`
	MimeTipi string `json:"mimeTipi"`
}

// Kaydet akıştaki dosyayı doğrulayıp rastgele adla diske yazar.
// Tip, dosyanın ilk 512 baytından tespit edilir; izinli listede
// olmayan tipler ve tavanı aşan dosyalar reddedilir.
func (s *Store) Kaydet(r io.Reader, beyanBoyut int64) (*Sonuc, error) {
	if beyanBoyut > s.boyutTavan {
		return nil, model.NewValidationError(map[string]string{
			"dosya": fmt.Sprintf("Dosya boyutu %d baytı aşamaz.", s.boyutTavan),
		})
	}

	bas := make([]byte, 512)
	n, err := io.ReadFull(r, bas)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("dosya okunamadı: %w", err)
	}
	bas = bas[:n]

	mimeTipi := http.DetectContentType(bas)
	if i := strings.Index(mimeTipi, ";"); i >= 0 {
		mimeTipi = mimeTipi[:i]
	}
	uzanti, izinli := izinliTipler[mimeTipi]
	if !izinli {
		return nil, model.NewValidationError(map[string]string{
			"dosya": "Yalnızca JPEG, PNG, WebP ve PDF dosyaları yüklenebilir.",
		})
	}

	dosyaAdi := uuid.NewString() + uzanti
	hedefYol := filepath.Join(s.dizin, dosyaAdi)

	hedef, err := os.OpenFile(hedefYol, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("dosya oluşturulamadı: %w", err)
	}
	defer hedef.Close()

	// Okunan başlık ve kalan akış tavan+1 ile sınırlanarak yazılır;
	// beyan edilen boyuttan bağımsız olarak gerçek boyut denetlenir.
	yazilan, err := io.Copy(hedef, io.LimitReader(io.MultiReader(bytes.NewReader(bas), r), s.boyutTavan+1))
	if err != nil {
		os.Remove(hedefYol)
		return nil, fmt.Errorf("dosya yazılamadı: %w", err)
	}
	if yazilan > s.boyutTavan {
		os.Remove(hedefYol)
		return nil, model.NewValidationError(map[string]string{
			"dosya": fmt.Sprintf("Dosya boyutu %d baytı aşamaz.", s.boyutTavan),
		})
	}

	return &Sonuc{
		DosyaAdi: dosyaAdi,
		URL:      "/uploads/" + dosyaAdi,
		Boyut:    yazilan,
		MimeTipi: mimeTipi,
	}, nil
}

// Dizin servis edilen kök dizini döndürür.
func (s *Store) Dizin() string {
	return s.dizin
}
