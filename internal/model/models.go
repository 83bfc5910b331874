// Package model alan modellerini ve hata taksonomisini tanımlar.
package model

import "time"

// Rol personelin yetki seviyesini belirtir.
type Rol string

const (
	RolAdmin   Rol = "ADMIN"
	RolManager Rol = "MANAGER"
	RolStaff   Rol = "STAFF"
)

// Gecerli rolün tanımlı değerlerden biri olup olmadığını döndürür.
func (r Rol) Gecerli() bool {
	switch r {
	case RolAdmin, RolManager, RolStaff:
		return true
	}
	return false
}

// YonetimYetkisi katalog ve bölge gibi rol kapılı mutasyonlar için
// gereken yetkiyi (ADMIN veya MANAGER) taşıyıp taşımadığını döndürür.
func (r Rol) YonetimYetkisi() bool {
	return r == RolAdmin || r == RolManager
}

// Personel sisteme giriş yapabilen kullanıcıyı temsil eder.
type Personel struct {
	ID           string    `json:"id"`
	KullaniciAdi string    `json:"kullanici_adi"`
	AdSoyad      string    `json:"ad_soyad"`
	Rol          Rol       `json:"rol"`
	ParolaOzeti  string    `json:"-"`
	Aktif        bool      `json:"aktif"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Kisi takip edilen kişi kaydını temsil eder.
// Alan semantiği (kimlik numarası formatı vb.) bu katmanda doğrulanmaz.
type Kisi struct {
	ID          string    `json:"id"`
	Ad          string    `json:"ad"`
	Soyad       string    `json:"soyad"`
	KimlikNo    string    `json:"kimlik_no,omitempty"`
	Notlar      string    `json:"notlar,omitempty"` // sanitize edilmiş HTML
	Arsivlendi  bool      `json:"arsivlendi"`
	OlusturanID string    `json:"olusturan_id,omitempty"` // boş = oluşturan yok
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Telefon bir kişiye bağlı telefon numarasını temsil eder.
type Telefon struct {
	ID        string    `json:"id"`
	KisiID    string    `json:"kisi_id"`
	Numara    string    `json:"numara"`
	Etiket    string    `json:"etiket,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Arac bir kişiye bağlı araç kaydını temsil eder.
type Arac struct {
	ID        string    `json:"id"`
	KisiID    string    `json:"kisi_id"`
	Plaka     string    `json:"plaka"`
	MarkaID   string    `json:"marka_id,omitempty"`
	ModelID   string    `json:"model_id,omitempty"`
	Renk      string    `json:"renk,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Adres bir kişiye bağlı adres kaydını temsil eder.
type Adres struct {
	ID        string    `json:"id"`
	KisiID    string    `json:"kisi_id"`
	BolgeID   string    `json:"bolge_id,omitempty"`
	Satir     string    `json:"satir"`
	CreatedAt time.Time `json:"created_at"`
}

// TakipDurumu bir takip kaydının yaşam döngüsü durumudur.
type TakipDurumu string

const (
	TakipAcik    TakipDurumu = "acik"
	TakipKapandi TakipDurumu = "kapandi"
)

// Takip bir kişi üzerindeki izleme kaydını temsil eder.
type Takip struct {
	ID         string      `json:"id"`
	KisiID     string      `json:"kisi_id"`
	PersonelID string      `json:"personel_id,omitempty"`
	Baslik     string      `json:"baslik"`
	Notlar     string      `json:"notlar,omitempty"`
	Durum      TakipDurumu `json:"durum"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Bolge hiyerarşik bölge kaydını temsil eder.
// UstBolgeID boş ise kök bölgedir.
type Bolge struct {
	ID         string    `json:"id"`
	Ad         string    `json:"ad"`
	UstBolgeID *string   `json:"ust_bolge_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Marka araç markası taksonomisinin kök kaydıdır.
type Marka struct {
	ID        string    `json:"id"`
	Ad        string    `json:"ad"`
	CreatedAt time.Time `json:"created_at"`
}

// AracModeli bir markaya bağlı model kaydıdır.
type AracModeli struct {
	ID        string    `json:"id"`
	MarkaID   string    `json:"marka_id"`
	Ad        string    `json:"ad"`
	CreatedAt time.Time `json:"created_at"`
}

// AlarmDurumu alarmın bildirim yaşam döngüsü durumudur.
type AlarmDurumu string

const (
	// AlarmAktif alarm kurulu, tetik zamanı bekleniyor.
	AlarmAktif AlarmDurumu = "aktif"
	// AlarmTetiklendi bildirim başarıyla gönderildi.
	AlarmTetiklendi AlarmDurumu = "tetiklendi"
	// AlarmDurduruldu webhook kalıcı hata verdiği için bildirim durduruldu.
	AlarmDurduruldu AlarmDurumu = "durduruldu"
)

// Alarm zamanlanmış bildirim kaydını temsil eder.
type Alarm struct {
	ID            string      `json:"id"`
	KisiID        *string     `json:"kisi_id,omitempty"`
	Baslik        string      `json:"baslik"`
	Aciklama      string      `json:"aciklama,omitempty"` // sanitize edilmiş HTML
	TetikZamani   time.Time   `json:"tetik_zamani"`
	WebhookURL    string      `json:"webhook_url,omitempty"`
	Durum         AlarmDurumu `json:"durum"`
	ArdisikHata   int         `json:"ardisik_hata"`
	HataMesaji    string      `json:"hata_mesaji,omitempty"`
	SonrakiDeneme *time.Time  `json:"sonraki_deneme,omitempty"`
	OlusturanID   string      `json:"olusturan_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// IliskiSayimi bir kaydın izlenen bağımlı ilişkilerinin sayılarını tutar.
// Anahtar ilişki adı (örn. "telefonlar"), değer kayıt sayısıdır.
type IliskiSayimi map[string]int

// Toplam tüm ilişki sayılarının toplamını döndürür.
func (s IliskiSayimi) Toplam() int {
	toplam := 0
	for _, n := range s {
		toplam += n
	}
	return toplam
}

// BagimliVar en az bir izlenen ilişki sayısının sıfırdan farklı
// olup olmadığını döndürür. Batch silmede arşivleme kararı budur.
func (s IliskiSayimi) BagimliVar() bool {
	return s.Toplam() > 0
}

// BatchSonuc toplu silme işleminin bölüntü sayaçlarını taşır.
type BatchSonuc struct {
	Success  int `json:"success"`
	Failed   int `json:"failed"`
	Archived int `json:"archived"`
	Deleted  int `json:"deleted"`
}

// ListeSecenekleri liste uçlarının filtre/sıralama/sayfalama girdisidir.
type ListeSecenekleri struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string // "asc" | "desc"
}

// Normalize geçersiz değerleri varsayılanlara çeker.
// Sayfa 1'den, limit 1-200 aralığından küçük/büyük olamaz.
func (o *ListeSecenekleri) Normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 25
	}
	if o.Limit > 200 {
		o.Limit = 200
	}
	if o.SortOrder != "desc" {
		o.SortOrder = "asc"
	}
}

// Offset SQL OFFSET değerini döndürür.
func (o ListeSecenekleri) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Sayfalama liste yanıtlarının sayfalama metadata'sıdır.
type Sayfalama struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// YeniSayfalama toplam kayıt sayısından sayfalama metadata'sı üretir.
func YeniSayfalama(opts ListeSecenekleri, total int) Sayfalama {
	pages := total / opts.Limit
	if total%opts.Limit != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return Sayfalama{Page: opts.Page, Limit: opts.Limit, Total: total, TotalPages: pages}
}

// DenetimEylemi denetim kaydındaki eylem tipidir.
type DenetimEylemi string

const (
	DenetimCreate    DenetimEylemi = "CREATE"
	DenetimUpdate    DenetimEylemi = "UPDATE"
	DenetimDelete    DenetimEylemi = "DELETE"
	DenetimArchive   DenetimEylemi = "ARCHIVE"
	DenetimView      DenetimEylemi = "VIEW"
	DenetimList      DenetimEylemi = "LIST"
	DenetimLogin     DenetimEylemi = "LOGIN"
	DenetimLogout    DenetimEylemi = "LOGOUT"
	DenetimLoginFail DenetimEylemi = "LOGIN_FAIL"
)

// DenetimKaydi append-only denetim log girdisidir; asla güncellenmez.
type DenetimKaydi struct {
	ID           string        `json:"id"`
	EntityTipi   string        `json:"entity_tipi"`
	EntityID     string        `json:"entity_id,omitempty"`
	Eylem        DenetimEylemi `json:"eylem"`
	OncekiDurum  []byte        `json:"onceki_durum,omitempty"`  // JSON anlık görüntü
	SonrakiDurum []byte        `json:"sonraki_durum,omitempty"` // JSON anlık görüntü
	Etiket       string        `json:"etiket,omitempty"`
	PersonelID   string        `json:"personel_id,omitempty"`
	PersonelAd   string        `json:"personel_ad,omitempty"`
	Zaman        time.Time     `json:"zaman"`
}
