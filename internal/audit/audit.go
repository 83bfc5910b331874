// Package audit veri değiştiren ve veri okuyan işlemlerin append-only
// denetim kayıtlarını yazar.
//
// Denetim yazımı best-effort'tur: kayıt yazılamadığında hata loglanır
// ve metrik artırılır ama asıl işlem asla geri alınmaz veya
// başarısız sayılmaz.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/metrics"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/repository"
)

// Kaydedici denetim kayıtlarını oluşturur ve yazar.
type Kaydedici struct {
	repo    repository.DenetimRepository
	metrics *metrics.Collector
	logger  *slog.Logger
}

func NewKaydedici(repo repository.DenetimRepository, m *metrics.Collector, logger *slog.Logger) *Kaydedici {
	if logger == nil {
		logger = slog.Default()
	}
	return &Kaydedici{repo: repo, metrics: m, logger: logger}
}

// yaz kayıt ekler; hata asıl işleme yansıtılmaz.
func (k *Kaydedici) yaz(ctx context.Context, kayit *model.DenetimKaydi) {
	kayit.ID = uuid.NewString()
	if oturum, ok := auth.OturumFromContext(ctx); ok {
		kayit.PersonelID = oturum.PersonelID
		kayit.PersonelAd = oturum.AdSoyad
	}
	if err := k.repo.Append(ctx, kayit); err != nil {
		k.logger.Error("denetim kaydı yazılamadı",
			"entity_tipi", kayit.EntityTipi,
			"eylem", kayit.Eylem,
			"error", err)
		if k.metrics != nil {
			k.metrics.RecordDenetimHata()
		}
		return
	}
	if k.metrics != nil {
		k.metrics.RecordDenetimYazildi()
	}
}

// snapshot entity durumunu JSON'a serileştirir. Serileştirilemeyen
// durum NULL snapshot olarak kalır.
func (k *Kaydedici) snapshot(v any) []byte {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		k.logger.Error("denetim snapshot serileştirilemedi", "error", err)
		return nil
	}
	return b
}

// LogCreate yeni oluşturulan entity için kayıt yazar.
func (k *Kaydedici) LogCreate(ctx context.Context, entityTipi, entityID, etiket string, yeni any) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi:   entityTipi,
		EntityID:     entityID,
		Eylem:        model.DenetimCreate,
		SonrakiDurum: k.snapshot(yeni),
		Etiket:       etiket,
	})
}

// LogUpdate güncelleme için önceki ve sonraki durumu birlikte yazar.
func (k *Kaydedici) LogUpdate(ctx context.Context, entityTipi, entityID, etiket string, onceki, yeni any) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi:   entityTipi,
		EntityID:     entityID,
		Eylem:        model.DenetimUpdate,
		OncekiDurum:  k.snapshot(onceki),
		SonrakiDurum: k.snapshot(yeni),
		Etiket:       etiket,
	})
}

// LogDelete kalıcı silme için son durumu önceki durum olarak saklar.
func (k *Kaydedici) LogDelete(ctx context.Context, entityTipi, entityID, etiket string, onceki any) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi:  entityTipi,
		EntityID:    entityID,
		Eylem:       model.DenetimDelete,
		OncekiDurum: k.snapshot(onceki),
		Etiket:      etiket,
	})
}

// LogArchive bağımlı ilişkiler nedeniyle arşivlenen entity için yazar.
func (k *Kaydedici) LogArchive(ctx context.Context, entityTipi, entityID, etiket string) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi: entityTipi,
		EntityID:   entityID,
		Eylem:      model.DenetimArchive,
		Etiket:     etiket,
	})
}

// LogView tekil kayıt görüntülemesini yazar.
func (k *Kaydedici) LogView(ctx context.Context, entityTipi, entityID, etiket string) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi: entityTipi,
		EntityID:   entityID,
		Eylem:      model.DenetimView,
		Etiket:     etiket,
	})
}

// LogList liste görüntülemesini yazar; entity kimliği yoktur.
// Uygulanan filtre ve dönen sonuç sayısı etikete geçer.
func (k *Kaydedici) LogList(ctx context.Context, entityTipi, filtre string, sonucSayisi int) {
	etiket := fmt.Sprintf("sonuc=%d", sonucSayisi)
	if filtre != "" {
		etiket = fmt.Sprintf("filtre=%q sonuc=%d", filtre, sonucSayisi)
	}
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi: entityTipi,
		Eylem:      model.DenetimList,
		Etiket:     etiket,
	})
}

// LogLogin başarılı girişi yazar. Oturum contexte henüz olmadığı için
// personel bilgisi parametre olarak alınır.
func (k *Kaydedici) LogLogin(ctx context.Context, p *model.Personel) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi: "personel",
		EntityID:   p.ID,
		Eylem:      model.DenetimLogin,
		Etiket:     p.KullaniciAdi,
		PersonelID: p.ID,
		PersonelAd: p.AdSoyad,
	})
}

// LogLoginFail başarısız giriş denemesini yazar. Parola asla kaydedilmez.
func (k *Kaydedici) LogLoginFail(ctx context.Context, kullaniciAdi string) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi: "personel",
		Eylem:      model.DenetimLoginFail,
		Etiket:     kullaniciAdi,
	})
}

// LogLogout çıkışı yazar.
func (k *Kaydedici) LogLogout(ctx context.Context) {
	k.yaz(ctx, &model.DenetimKaydi{
		EntityTipi: "personel",
		Eylem:      model.DenetimLogout,
	})
}

// Gecmis entity'nin denetim geçmişini döndürür.
func (k *Kaydedici) Gecmis(ctx context.Context, entityTipi, entityID string, limit int) ([]*model.DenetimKaydi, error) {
	return k.repo.ListByEntity(ctx, entityTipi, entityID, limit)
}
