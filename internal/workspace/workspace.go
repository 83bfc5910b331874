// Package workspace sekmeli çalışma alanının durum makinesini içerir.
//
// Çalışma alanı kullanıcı başına tutulur ve JSON snapshot olarak
// kullanıcı tercihlerinde saklanır. Buradaki tipler saf veri
// yapılarıdır; eşzamanlılık koruması çağıran katmana aittir.
package workspace

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Sekme çalışma alanındaki tek bir sekmedir.
type Sekme struct {
	ID           string            `json:"id"`
	Yol          string            `json:"yol"`
	SayfaAdi     string            `json:"sayfaAdi"`
	Baslik       string            `json:"baslik"`
	Ikon         string            `json:"ikon,omitempty"`
	Parametreler map[string]string `json:"parametreler,omitempty"`
	// HicAktifOldu sekmenin en az bir kez aktif olduğunu söyler.
	// Arka planda açılan sekmenin içeriği ilk aktivasyona kadar
	// yüklenmez; bir kez yüklenen içerik sekme pasifken de canlı kalır.
	HicAktifOldu bool   `json:"hicAktifOldu"`
	Sabit        bool   `json:"sabit,omitempty"`
	Kirli        bool   `json:"kirli,omitempty"`
	ScrollKonumu int    `json:"scrollKonumu"`
	GrupID       string `json:"grupId,omitempty"`
}

// SekmeGrubu sekmeleri renk etiketiyle gruplar.
type SekmeGrubu struct {
	ID   string `json:"id"`
	Ad   string `json:"ad"`
	Renk string `json:"renk,omitempty"`
}

// Bolme ikinci panel durumudur. İkincil sekme seçilene kadar seçici
// açık kalır; seçilen sekme birinci paneldeki kopyasından bağımsız
// kaydırılır.
type Bolme struct {
	BirincilID   string `json:"birincilId"`
	IkincilID    string `json:"ikincilId,omitempty"`
	SeciciAcik   bool   `json:"seciciAcik"`
	ScrollKonumu int    `json:"scrollKonumu,omitempty"`
}

// CalismaAlani bir kullanıcının sekme durumudur.
type CalismaAlani struct {
	Sekmeler []*Sekme      `json:"sekmeler"`
	AktifID  string        `json:"aktifId,omitempty"`
	Gruplar  []*SekmeGrubu `json:"gruplar,omitempty"`
	Bolme    *Bolme        `json:"bolme,omitempty"`
}

// Yeni boş çalışma alanı döndürür.
func Yeni() *CalismaAlani {
	return &CalismaAlani{}
}

func (c *CalismaAlani) sekmeBul(id string) (int, *Sekme) {
	for i, s := range c.Sekmeler {
		if s.ID == id {
			return i, s
		}
	}
	return -1, nil
}

func (c *CalismaAlani) yolaGoreBul(yol string) *Sekme {
	for _, s := range c.Sekmeler {
		if s.Yol == yol {
			return s
		}
	}
	return nil
}

// Aktif aktif sekmeyi döndürür; yoksa nil.
func (c *CalismaAlani) Aktif() *Sekme {
	_, s := c.sekmeBul(c.AktifID)
	return s
}

// SekmeAc yolu sekme olarak açar. Aynı yol zaten açıksa yeni sekme
// oluşturulmaz, mevcut sekme döndürülür. arkaplan true ise sekme aktif
// yapılmaz ve içeriği yüklenmeden bekler.
func (c *CalismaAlani) SekmeAc(yol string, arkaplan bool) *Sekme {
	sayfa, params, _ := SayfaCoz(yol)
	yol = normalizeYol(yol)

	if mevcut := c.yolaGoreBul(yol); mevcut != nil {
		if !arkaplan {
			c.AktifYap(mevcut.ID)
		}
		return mevcut
	}

	s := &Sekme{
		ID:           uuid.NewString(),
		Yol:          yol,
		SayfaAdi:     sayfa.Ad,
		Baslik:       sayfa.BaslikSablonu,
		Ikon:         sayfa.Ikon,
		Parametreler: params,
	}
	c.Sekmeler = append(c.Sekmeler, s)
	if !arkaplan {
		c.AktifYap(s.ID)
	}
	return s
}

// AktifYap sekmeyi aktif yapar ve ilk aktivasyonu işaretler.
// Bilinmeyen kimlik durumu değiştirmez.
func (c *CalismaAlani) AktifYap(id string) {
	_, s := c.sekmeBul(id)
	if s == nil {
		return
	}
	c.AktifID = s.ID
	s.HicAktifOldu = true
}

// SekmeKapat sekmeyi kapatır. Aktif sekme kapatılırsa soldaki komşu
// aktif olur; en soldaki kapatılırsa yeni ilk sekme aktif olur.
// Sabitlenmiş sekme de kapatılabilir; sabitlik makine değişmezi değil
// arayüz olanağıdır.
func (c *CalismaAlani) SekmeKapat(id string) {
	i, s := c.sekmeBul(id)
	if s == nil {
		return
	}

	c.Sekmeler = append(c.Sekmeler[:i], c.Sekmeler[i+1:]...)

	if c.Bolme != nil {
		switch id {
		case c.Bolme.BirincilID:
			c.Bolme = nil
		case c.Bolme.IkincilID:
			c.Bolme.IkincilID = ""
			c.Bolme.SeciciAcik = true
			c.Bolme.ScrollKonumu = 0
		}
	}

	if c.AktifID != id {
		return
	}
	if len(c.Sekmeler) == 0 {
		c.AktifID = ""
		return
	}
	yeniIndeks := i - 1
	if yeniIndeks < 0 {
		yeniIndeks = 0
	}
	c.AktifYap(c.Sekmeler[yeniIndeks].ID)
}

// Sifirla sabitlenmemiş tüm sekmeleri kapatır. Sabit sekmeler ve
// grupları kalır; aktif sekme silindiyse kalan ilk sekme aktif olur.
func (c *CalismaAlani) Sifirla() {
	var kalan []*Sekme
	for _, s := range c.Sekmeler {
		if s.Sabit {
			kalan = append(kalan, s)
		}
	}
	c.Sekmeler = kalan
	c.Bolme = nil

	if _, s := c.sekmeBul(c.AktifID); s == nil {
		c.AktifID = ""
		if len(c.Sekmeler) > 0 {
			c.AktifYap(c.Sekmeler[0].ID)
		}
	}
}

// SabitDegistir sekmenin sabitlik durumunu tersine çevirir.
func (c *CalismaAlani) SabitDegistir(id string) {
	if _, s := c.sekmeBul(id); s != nil {
		s.Sabit = !s.Sabit
	}
}

// KirliIsaretle sekmedeki kaydedilmemiş değişiklik bayrağını günceller.
func (c *CalismaAlani) KirliIsaretle(id string, kirli bool) {
	if _, s := c.sekmeBul(id); s != nil {
		s.Kirli = kirli
	}
}

// ScrollKaydet sekmenin kaydırma konumunu saklar. Yakalama aktiften
// pasife geçişte yapılır ve monotondur: saklanan konumdan küçük veya
// negatif değerler yok sayılır. Konum sekme tekrar aktif olduğunda
// geri yüklenir.
func (c *CalismaAlani) ScrollKaydet(id string, konum int) {
	_, s := c.sekmeBul(id)
	if s == nil || konum < 0 || konum <= s.ScrollKonumu {
		return
	}
	s.ScrollKonumu = konum
}

// BaslikGuncelle sekme başlığını içerik yüklendikten sonra gelen
// gerçek değerle değiştirir. Boş başlık yok sayılır.
func (c *CalismaAlani) BaslikGuncelle(id, baslik string) {
	_, s := c.sekmeBul(id)
	if s == nil || baslik == "" {
		return
	}
	s.Baslik = baslik
}

// GrupOlustur yeni grup oluşturur ve verilen sekmeleri gruba alır.
func (c *CalismaAlani) GrupOlustur(ad, renk string, sekmeIDler []string) *SekmeGrubu {
	g := &SekmeGrubu{ID: uuid.NewString(), Ad: ad, Renk: renk}
	c.Gruplar = append(c.Gruplar, g)
	for _, id := range sekmeIDler {
		if _, s := c.sekmeBul(id); s != nil {
			s.GrupID = g.ID
		}
	}
	return g
}

// GrupKaldir grubu siler; gruptaki sekmeler açık kalır.
func (c *CalismaAlani) GrupKaldir(grupID string) {
	for i, g := range c.Gruplar {
		if g.ID == grupID {
			c.Gruplar = append(c.Gruplar[:i], c.Gruplar[i+1:]...)
			break
		}
	}
	for _, s := range c.Sekmeler {
		if s.GrupID == grupID {
			s.GrupID = ""
		}
	}
}

// BolmeAc ikinci paneli açar. Aktif sekme birincil panel olur; ikincil
// sekme seçilene kadar ikinci panelde seçici gösterilir. Aktif sekme
// yoksa veya panel zaten açıksa durum değişmez.
func (c *CalismaAlani) BolmeAc() {
	if c.Bolme != nil || c.AktifID == "" {
		return
	}
	c.Bolme = &Bolme{BirincilID: c.AktifID, SeciciAcik: true}
}

// BolmeSekmeSec ikinci panelde gösterilecek sekmeyi seçer. Birincil
// sekme kendisiyle aynalanamaz; seçilen sekmenin içeriği yüklenmemişse
// yüklenir.
func (c *CalismaAlani) BolmeSekmeSec(id string) error {
	if c.Bolme == nil {
		return fmt.Errorf("ikinci panel açık değil")
	}
	_, s := c.sekmeBul(id)
	if s == nil {
		return fmt.Errorf("sekme bulunamadı: %s", id)
	}
	if id == c.Bolme.BirincilID {
		return fmt.Errorf("birincil sekme ikinci panelde aynalanamaz")
	}
	s.HicAktifOldu = true
	c.Bolme.IkincilID = id
	c.Bolme.SeciciAcik = false
	c.Bolme.ScrollKonumu = 0
	return nil
}

// BolmeScrollKaydet ikinci panelin kaydırma konumunu saklar. Panel
// birinci paneldeki kopyadan bağımsız kaydırılır.
func (c *CalismaAlani) BolmeScrollKaydet(konum int) {
	if c.Bolme == nil || c.Bolme.IkincilID == "" || konum < 0 {
		return
	}
	c.Bolme.ScrollKonumu = konum
}

// BolmeKapat ikinci paneli kapatır; sekmeler açık kalır.
func (c *CalismaAlani) BolmeKapat() {
	c.Bolme = nil
}

// RenderListesi içeriği DOM'da tutulması gereken sekmeleri döndürür.
// Hiç aktif olmamış sekmeler listeye girmez (tembel yükleme); bir kez
// aktif olmuş sekmeler pasifken de listede kalır (keep-alive).
func (c *CalismaAlani) RenderListesi() []*Sekme {
	var sonuc []*Sekme
	for _, s := range c.Sekmeler {
		if s.HicAktifOldu {
			sonuc = append(sonuc, s)
		}
	}
	return sonuc
}

// Snapshot çalışma alanını JSON'a serileştirir.
func (c *CalismaAlani) Snapshot() ([]byte, error) {
	return json.Marshal(c)
}

// YukleSnapshot JSON snapshot'tan çalışma alanı kurar ve tutarsızlığı
// onarır: bilinmeyen aktif kimlik temizlenir, sayfası artık var
// olmayan sekmeler yer tutucuya bağlanır, kopuk bölme kaldırılır.
func YukleSnapshot(veri []byte) (*CalismaAlani, error) {
	if len(veri) == 0 {
		return Yeni(), nil
	}
	var c CalismaAlani
	if err := json.Unmarshal(veri, &c); err != nil {
		return nil, fmt.Errorf("çalışma alanı snapshot çözülemedi: %w", err)
	}

	for _, s := range c.Sekmeler {
		sayfa, params, ok := SayfaCoz(s.Yol)
		if !ok {
			s.SayfaAdi = YerTutucuSayfa.Ad
			s.Ikon = YerTutucuSayfa.Ikon
			if s.Baslik == "" {
				s.Baslik = YerTutucuSayfa.BaslikSablonu
			}
			continue
		}
		s.SayfaAdi = sayfa.Ad
		s.Parametreler = params
		if s.Ikon == "" {
			s.Ikon = sayfa.Ikon
		}
		if s.Baslik == "" {
			s.Baslik = sayfa.BaslikSablonu
		}
	}

	if c.AktifID != "" {
		if _, s := (&c).sekmeBul(c.AktifID); s == nil {
			c.AktifID = ""
		}
	}
	if c.AktifID == "" && len(c.Sekmeler) > 0 {
		(&c).AktifYap(c.Sekmeler[0].ID)
	}
	if c.Bolme != nil {
		if _, s := (&c).sekmeBul(c.Bolme.BirincilID); s == nil {
			c.Bolme = nil
		} else if c.Bolme.IkincilID != "" {
			if _, s := (&c).sekmeBul(c.Bolme.IkincilID); s == nil {
				c.Bolme.IkincilID = ""
				c.Bolme.SeciciAcik = true
				c.Bolme.ScrollKonumu = 0
			}
		}
	}
	return &c, nil
}
