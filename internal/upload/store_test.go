package upload

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/altay-yazilim/bplani/internal/model"
)

// pngBaslik geçerli bir PNG dosya başlığı.
var pngBaslik = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func yeniStore(t *testing.T, tavan int64) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), tavan)
	if err != nil {
		t.Fatalf("store oluşturulamadı: %v", err)
	}
	return s
}

func TestKaydetPNG(t *testing.T) {
	s := yeniStore(t, 0)

	veri := append(append([]byte{}, pngBaslik...), bytes.Repeat([]byte{0}, 100)...)
	sonuc, err := s.Kaydet(bytes.NewReader(veri), int64(len(veri)))
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}

	if sonuc.MimeTipi != "image/png" {
		t.Errorf("mime = %s", sonuc.MimeTipi)
	}
	if !strings.HasSuffix(sonuc.DosyaAdi, ".png") {
		t.Errorf("dosya adı = %s", sonuc.DosyaAdi)
	}
	if !strings.HasPrefix(sonuc.URL, "/uploads/") {
		t.Errorf("url = %s", sonuc.URL)
	}
	if sonuc.Boyut != int64(len(veri)) {
		t.Errorf("boyut = %d", sonuc.Boyut)
	}

	yazilan, err := os.ReadFile(filepath.Join(s.Dizin(), sonuc.DosyaAdi))
	if err != nil {
		t.Fatalf("dosya okunamadı: %v", err)
	}
	if !bytes.Equal(yazilan, veri) {
		t.Error("diske yazılan içerik farklı")
	}
}

func TestKaydetIzinsizTip(t *testing.T) {
	s := yeniStore(t, 0)

	// text/plain olarak tespit edilir.
	_, err := s.Kaydet(strings.NewReader("merhaba dünya"), 13)
	apiErr, ok := err.(*model.APIError)
	if !ok {
		t.Fatalf("APIError bekleniyordu: %T", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("kod = %s", apiErr.Code)
	}
}

func TestKaydetUzantiBeyanaBakmaz(t *testing.T) {
	s := yeniStore(t, 0)

	// HTML içerik hangi adla gelirse gelsin içerikten tespit edilip reddedilir.
	_, err := s.Kaydet(strings.NewReader("<html><body>zararlı</body></html>"), 33)
	if err == nil {
		t.Fatal("HTML içerik reddedilmeliydi")
	}
}

func TestKaydetBoyutTavani(t *testing.T) {
	s := yeniStore(t, 600)

	veri := append(append([]byte{}, pngBaslik...), bytes.Repeat([]byte{0}, 1000)...)

	// Beyan edilen boyut tavanı aşıyorsa okuma yapılmadan reddedilir.
	if _, err := s.Kaydet(bytes.NewReader(veri), int64(len(veri))); err == nil {
		t.Error("beyan edilen boyut için hata bekleniyordu")
	}

	// Beyan edilen boyut yalan olsa bile gerçek boyut denetlenir.
	if _, err := s.Kaydet(bytes.NewReader(veri), 100); err == nil {
		t.Error("gerçek boyut için hata bekleniyordu")
	}

	girdiler, err := os.ReadDir(s.Dizin())
	if err != nil {
		t.Fatalf("dizin okunamadı: %v", err)
	}
	if len(girdiler) != 0 {
		t.Errorf("reddedilen dosyalar diske kalmamalı: %d dosya", len(girdiler))
	}
}

func TestKaydetRastgeleAd(t *testing.T) {
	s := yeniStore(t, 0)

	veri := append(append([]byte{}, pngBaslik...), bytes.Repeat([]byte{0}, 50)...)
	s1, err := s.Kaydet(bytes.NewReader(veri), int64(len(veri)))
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	s2, err := s.Kaydet(bytes.NewReader(veri), int64(len(veri)))
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if s1.DosyaAdi == s2.DosyaAdi {
		t.Error("aynı içerik farklı adla saklanmalı")
	}
}
