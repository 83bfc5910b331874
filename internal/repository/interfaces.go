// Package repository kalıcılık katmanının arayüzlerini ve PostgreSQL
// implementasyonlarını sağlar.
//
// Tüm Find* metodları kayıt yoksa (nil, nil) döndürür; 404 kararı
// servis/handler katmanına aittir. Teklik ihlalleri ham pq hatası
// olarak yukarı taşınır ve servis katmanında 409'a çevrilir.
package repository

import (
	"context"

	"github.com/altay-yazilim/bplani/internal/model"
)

// KisiRepository kişi kayıtları ve bağımlı alt kaynakları yönetir.
type KisiRepository interface {
	FindByID(ctx context.Context, id string) (*model.Kisi, error)
	List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Kisi, int, error)
	Create(ctx context.Context, k *model.Kisi) error
	Update(ctx context.Context, k *model.Kisi) error
	Delete(ctx context.Context, id string) error

	// IliskiSayilari kişinin izlenen bağımlı ilişkilerinin (telefonlar,
	// araçlar, adresler, takipler) sayılarını döndürür.
	IliskiSayilari(ctx context.Context, id string) (model.IliskiSayimi, error)

	// BatchSil kimlik kümesini tek atomik transaction içinde bölüntüler:
	// en az bir bağımlı ilişkisi olan kayıtlar arşivlenir, diğerleri
	// kalıcı silinir. Bölüntü kararı ve uygulaması aynı transaction'da
	// yapılır; iki ayrı çağrı arasında oku-sonra-davran yarışı yoktur.
	BatchSil(ctx context.Context, ids []string) (model.BatchSonuc, error)

	Telefonlar(ctx context.Context, kisiID string) ([]*model.Telefon, error)
	TelefonEkle(ctx context.Context, t *model.Telefon) error
	TelefonSil(ctx context.Context, telefonID string) (bool, error)
}

// BolgeRepository hiyerarşik bölge kayıtlarını yönetir.
type BolgeRepository interface {
	FindByID(ctx context.Context, id string) (*model.Bolge, error)
	List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Bolge, int, error)
	Create(ctx context.Context, b *model.Bolge) error
	Update(ctx context.Context, b *model.Bolge) error
	Delete(ctx context.Context, id string) error

	// AltBolgeSayisi verilen bölgeyi üst bölge olarak gösteren kayıt
	// sayısını döndürür. Sıfırdan büyükse silme reddedilir.
	AltBolgeSayisi(ctx context.Context, id string) (int, error)
}

// KatalogRepository marka/model taksonomisini yönetir.
type KatalogRepository interface {
	MarkaFindByID(ctx context.Context, id string) (*model.Marka, error)
	MarkaList(ctx context.Context) ([]*model.Marka, error)
	MarkaCreate(ctx context.Context, m *model.Marka) error
	MarkaDelete(ctx context.Context, id string) error
	ModelSayisi(ctx context.Context, markaID string) (int, error)

	ModelList(ctx context.Context, markaID string) ([]*model.AracModeli, error)
	ModelCreate(ctx context.Context, m *model.AracModeli) error
	ModelDelete(ctx context.Context, id string) (bool, error)
}

// AlarmRepository alarm kayıtlarını yönetir.
type AlarmRepository interface {
	FindByID(ctx context.Context, id string) (*model.Alarm, error)
	List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Alarm, int, error)
	Create(ctx context.Context, a *model.Alarm) error
	Update(ctx context.Context, a *model.Alarm) error
	Delete(ctx context.Context, id string) error

	// ListVadesiGelen tetik zamanı ve sonraki deneme zamanı geçmiş
	// aktif alarmları döndürür. Bildirim worker'ı tarafından kullanılır.
	ListVadesiGelen(ctx context.Context, limit int) ([]*model.Alarm, error)
}

// PersonelRepository personel kayıtlarını yönetir.
type PersonelRepository interface {
	FindByID(ctx context.Context, id string) (*model.Personel, error)
	FindByKullaniciAdi(ctx context.Context, kullaniciAdi string) (*model.Personel, error)
	List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Personel, int, error)
	Create(ctx context.Context, p *model.Personel) error
	Update(ctx context.Context, p *model.Personel) error
	Delete(ctx context.Context, id string) error

	// TakipSayisi personele atanmış takip kaydı sayısını döndürür.
	TakipSayisi(ctx context.Context, id string) (int, error)
}

// DenetimRepository append-only denetim kayıtlarını yönetir.
// Girdi asla güncellenmez veya silinmez.
type DenetimRepository interface {
	Append(ctx context.Context, kayit *model.DenetimKaydi) error
	ListByEntity(ctx context.Context, entityTipi, entityID string, limit int) ([]*model.DenetimKaydi, error)
}

// TercihRepository kullanıcı başına anahtarlı JSON tercihlerini yönetir.
// Sekme çalışma alanı snapshot'ı, locale ve tema burada saklanır.
type TercihRepository interface {
	// Get anahtarın JSON değerini döndürür; kayıt yoksa (nil, nil).
	Get(ctx context.Context, personelID, anahtar string) ([]byte, error)
	// Set anahtarın değerini upsert eder.
	Set(ctx context.Context, personelID, anahtar string, deger []byte) error
}
