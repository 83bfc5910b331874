package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/model"
)

type sahteDenetimRepo struct {
	kayitlar []*model.DenetimKaydi
	hata     error
}

func (r *sahteDenetimRepo) Append(_ context.Context, k *model.DenetimKaydi) error {
	if r.hata != nil {
		return r.hata
	}
	r.kayitlar = append(r.kayitlar, k)
	return nil
}

func (r *sahteDenetimRepo) ListByEntity(_ context.Context, entityTipi, entityID string, _ int) ([]*model.DenetimKaydi, error) {
	var sonuc []*model.DenetimKaydi
	for _, k := range r.kayitlar {
		if k.EntityTipi == entityTipi && k.EntityID == entityID {
			sonuc = append(sonuc, k)
		}
	}
	return sonuc, nil
}

func oturumluContext(personelID, adSoyad string) context.Context {
	return auth.ContextWithOturum(context.Background(), &auth.Oturum{
		PersonelID: personelID,
		AdSoyad:    adSoyad,
		Rol:        model.RolStaff,
	})
}

func TestLogUpdateSnapshotlariYazar(t *testing.T) {
	repo := &sahteDenetimRepo{}
	k := NewKaydedici(repo, nil, nil)

	onceki := map[string]string{"ad": "Ali"}
	yeni := map[string]string{"ad": "Veli"}
	k.LogUpdate(oturumluContext("p1", "Ayşe Demir"), "kisi", "k1", "Ali Yılmaz", onceki, yeni)

	if len(repo.kayitlar) != 1 {
		t.Fatalf("1 kayıt bekleniyordu, %d var", len(repo.kayitlar))
	}
	kayit := repo.kayitlar[0]
	if kayit.Eylem != model.DenetimUpdate {
		t.Errorf("eylem = %s, beklenen UPDATE", kayit.Eylem)
	}
	if kayit.PersonelID != "p1" || kayit.PersonelAd != "Ayşe Demir" {
		t.Errorf("işlemi yapan personel contextten alınmadı: %+v", kayit)
	}

	var oncekiGeri map[string]string
	if err := json.Unmarshal(kayit.OncekiDurum, &oncekiGeri); err != nil {
		t.Fatalf("önceki durum JSON değil: %v", err)
	}
	if oncekiGeri["ad"] != "Ali" {
		t.Errorf("önceki durum = %v", oncekiGeri)
	}
	var yeniGeri map[string]string
	if err := json.Unmarshal(kayit.SonrakiDurum, &yeniGeri); err != nil {
		t.Fatalf("sonraki durum JSON değil: %v", err)
	}
	if yeniGeri["ad"] != "Veli" {
		t.Errorf("sonraki durum = %v", yeniGeri)
	}
}

func TestYazmaHatasiYutulur(t *testing.T) {
	repo := &sahteDenetimRepo{hata: errors.New("bağlantı koptu")}
	k := NewKaydedici(repo, nil, nil)

	// Denetim best-effort: repo hatası panic veya hata olarak dışarı sızmaz.
	k.LogCreate(context.Background(), "kisi", "k1", "Ali", map[string]string{"ad": "Ali"})
	k.LogView(context.Background(), "kisi", "k1", "Ali")
	k.LogList(context.Background(), "kisi", "", 0)
}

func TestLogListFiltreVeSayiEtikete(t *testing.T) {
	repo := &sahteDenetimRepo{}
	k := NewKaydedici(repo, nil, nil)

	k.LogList(context.Background(), "kisi", "yılmaz", 12)
	k.LogList(context.Background(), "bolge", "", 3)

	if etiket := repo.kayitlar[0].Etiket; etiket != `filtre="yılmaz" sonuc=12` {
		t.Errorf("etiket = %q", etiket)
	}
	if etiket := repo.kayitlar[1].Etiket; etiket != "sonuc=3" {
		t.Errorf("etiket = %q", etiket)
	}
}

func TestLogLoginFailParolaIcermez(t *testing.T) {
	repo := &sahteDenetimRepo{}
	k := NewKaydedici(repo, nil, nil)

	k.LogLoginFail(context.Background(), "ali")

	kayit := repo.kayitlar[0]
	if kayit.Eylem != model.DenetimLoginFail {
		t.Errorf("eylem = %s", kayit.Eylem)
	}
	if kayit.Etiket != "ali" {
		t.Errorf("etiket = %s", kayit.Etiket)
	}
	if kayit.OncekiDurum != nil || kayit.SonrakiDurum != nil {
		t.Error("başarısız girişte snapshot yazılmamalı")
	}
}

func TestLogDeleteOncekiDurumSaklar(t *testing.T) {
	repo := &sahteDenetimRepo{}
	k := NewKaydedici(repo, nil, nil)

	k.LogDelete(oturumluContext("p1", "Ayşe"), "bolge", "b1", "Kadıköy", map[string]string{"ad": "Kadıköy"})

	kayit := repo.kayitlar[0]
	if kayit.Eylem != model.DenetimDelete {
		t.Errorf("eylem = %s", kayit.Eylem)
	}
	if len(kayit.OncekiDurum) == 0 {
		t.Error("silinen kaydın son durumu saklanmalı")
	}
	if kayit.SonrakiDurum != nil {
		t.Error("silmede sonraki durum olmamalı")
	}
}
