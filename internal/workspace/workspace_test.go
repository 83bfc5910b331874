package workspace

import (
	"testing"
)

func TestSekmeAcAyniYolTekSekme(t *testing.T) {
	c := Yeni()

	s1 := c.SekmeAc("/kisiler/42", false)
	s2 := c.SekmeAc("/kisiler/42", false)

	if s1.ID != s2.ID {
		t.Error("aynı yol ikinci kez açıldığında yeni sekme oluşmamalı")
	}
	if len(c.Sekmeler) != 1 {
		t.Errorf("sekme sayısı = %d", len(c.Sekmeler))
	}
	if c.AktifID != s1.ID {
		t.Error("mevcut sekme aktif yapılmalı")
	}
}

func TestSekmeAcParametreCozumu(t *testing.T) {
	c := Yeni()

	s := c.SekmeAc("/kisiler/42", false)
	if s.SayfaAdi != "kisi-detay" {
		t.Errorf("sayfa = %s", s.SayfaAdi)
	}
	if s.Parametreler["id"] != "42" {
		t.Errorf("parametreler = %v", s.Parametreler)
	}
}

func TestArkaplanSekmesiAktifOlmaz(t *testing.T) {
	c := Yeni()
	on := c.SekmeAc("/kisiler", false)

	arka := c.SekmeAc("/alarmlar", true)

	if c.AktifID != on.ID {
		t.Error("arka plan sekmesi aktif sekmeyi değiştirmemeli")
	}
	if arka.HicAktifOldu {
		t.Error("arka plan sekmesi hiç aktif olmamış sayılmalı")
	}
}

func TestRenderListesiTembelYukleme(t *testing.T) {
	c := Yeni()
	aktif := c.SekmeAc("/kisiler", false)
	c.SekmeAc("/alarmlar", true)
	c.SekmeAc("/bolgeler", true)

	liste := c.RenderListesi()
	if len(liste) != 1 || liste[0].ID != aktif.ID {
		t.Errorf("yalnızca aktif olmuş sekme render edilmeli: %d sekme", len(liste))
	}

	// Bir kez aktif olan sekme pasifken de listede kalır.
	ikinci := c.SekmeAc("/alarmlar", false)
	c.AktifYap(aktif.ID)

	liste = c.RenderListesi()
	if len(liste) != 2 {
		t.Fatalf("keep-alive beklenen 2 sekme, gelen %d", len(liste))
	}
	bulundu := false
	for _, s := range liste {
		if s.ID == ikinci.ID {
			bulundu = true
		}
	}
	if !bulundu {
		t.Error("pasif ama bir kez aktif olmuş sekme listede kalmalı")
	}
}

func TestSekmeKapatSolKomsuAktifOlur(t *testing.T) {
	c := Yeni()
	s1 := c.SekmeAc("/kisiler", false)
	s2 := c.SekmeAc("/alarmlar", false)
	s3 := c.SekmeAc("/bolgeler", false)

	c.SekmeKapat(s3.ID)
	if c.AktifID != s2.ID {
		t.Errorf("soldaki komşu aktif olmalı, aktif = %s", c.AktifID)
	}

	c.SekmeKapat(s1.ID)
	if c.AktifID != s2.ID {
		t.Error("pasif sekme kapatılınca aktif sekme değişmemeli")
	}
}

func TestIlkSekmeKapatilinca(t *testing.T) {
	c := Yeni()
	s1 := c.SekmeAc("/kisiler", false)
	s2 := c.SekmeAc("/alarmlar", true)

	c.AktifYap(s1.ID)
	c.SekmeKapat(s1.ID)

	if c.AktifID != s2.ID {
		t.Errorf("en soldaki kapanınca yeni ilk sekme aktif olmalı, aktif = %s", c.AktifID)
	}
	if !c.Aktif().HicAktifOldu {
		t.Error("yeni aktif sekme aktif olmuş sayılmalı")
	}
}

func TestSonSekmeKapatilinca(t *testing.T) {
	c := Yeni()
	s := c.SekmeAc("/kisiler", false)
	c.SekmeKapat(s.ID)

	if len(c.Sekmeler) != 0 || c.AktifID != "" {
		t.Errorf("boş çalışma alanı bekleniyordu: %+v", c)
	}
}

func TestScrollKonumuKorunur(t *testing.T) {
	c := Yeni()
	s1 := c.SekmeAc("/kisiler", false)
	s2 := c.SekmeAc("/alarmlar", false)

	c.ScrollKaydet(s1.ID, 740)
	c.AktifYap(s1.ID)

	if s1.ScrollKonumu != 740 {
		t.Errorf("scroll = %d", s1.ScrollKonumu)
	}

	c.ScrollKaydet(s2.ID, -5)
	if s2.ScrollKonumu != 0 {
		t.Error("negatif scroll yok sayılmalı")
	}
}

func TestBolmeSeciciAkisi(t *testing.T) {
	c := Yeni()
	s1 := c.SekmeAc("/kisiler", false)
	s2 := c.SekmeAc("/alarmlar", true)

	c.AktifYap(s1.ID)
	c.BolmeAc()
	if c.Bolme == nil || c.Bolme.BirincilID != s1.ID {
		t.Fatal("aktif sekme birincil panel olmalı")
	}
	if !c.Bolme.SeciciAcik {
		t.Error("ikincil sekme seçilene kadar seçici açık olmalı")
	}

	if err := c.BolmeSekmeSec(s1.ID); err == nil {
		t.Error("birincil sekme ikinci panelde aynalanamamalı")
	}
	if err := c.BolmeSekmeSec(s2.ID); err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if c.Bolme.SeciciAcik {
		t.Error("seçim sonrası seçici kapanmalı")
	}
	if !s2.HicAktifOldu {
		t.Error("ikinci paneldeki sekmenin içeriği yüklenmeli")
	}

	// İkinci panel bağımsız kaydırılır.
	c.BolmeScrollKaydet(120)
	if c.Bolme.ScrollKonumu != 120 || s2.ScrollKonumu != 0 {
		t.Error("panel scroll'u sekme scroll'undan bağımsız olmalı")
	}

	// İkincil sekme kapatılınca seçici yeniden açılır.
	c.SekmeKapat(s2.ID)
	if c.Bolme == nil || !c.Bolme.SeciciAcik || c.Bolme.IkincilID != "" {
		t.Error("ikincil sekme kapanınca seçiciye dönülmeli")
	}

	// Birincil sekme kapatılınca bölme tamamen kapanır.
	c.SekmeKapat(s1.ID)
	if c.Bolme != nil {
		t.Error("birincil sekme kapanınca bölme kapanmalı")
	}
}

func TestScrollYakalamaMonoton(t *testing.T) {
	c := Yeni()
	s := c.SekmeAc("/kisiler", false)

	c.ScrollKaydet(s.ID, 500)
	c.ScrollKaydet(s.ID, 200)
	if s.ScrollKonumu != 500 {
		t.Errorf("saklanandan küçük konum yok sayılmalı, scroll = %d", s.ScrollKonumu)
	}

	c.ScrollKaydet(s.ID, 900)
	if s.ScrollKonumu != 900 {
		t.Errorf("daha büyük konum saklanmalı, scroll = %d", s.ScrollKonumu)
	}
}

func TestSifirlaSabitSekmeleriKorur(t *testing.T) {
	c := Yeni()
	s1 := c.SekmeAc("/kisiler", false)
	c.SekmeAc("/alarmlar", false)
	c.SekmeAc("/bolgeler", false)

	c.SabitDegistir(s1.ID)
	c.Sifirla()

	if len(c.Sekmeler) != 1 || c.Sekmeler[0].ID != s1.ID {
		t.Fatalf("yalnız sabit sekme kalmalı: %d sekme", len(c.Sekmeler))
	}
	if c.AktifID != s1.ID {
		t.Errorf("kalan sekme aktif olmalı, aktif = %s", c.AktifID)
	}

	c.SabitDegistir(s1.ID)
	c.Sifirla()
	if len(c.Sekmeler) != 0 || c.AktifID != "" {
		t.Error("sabit sekme kalmayınca çalışma alanı boşalmalı")
	}
}

func TestKirliIsaretle(t *testing.T) {
	c := Yeni()
	s := c.SekmeAc("/kisiler", false)

	c.KirliIsaretle(s.ID, true)
	if !s.Kirli {
		t.Error("sekme kirli işaretlenmeli")
	}
	c.KirliIsaretle(s.ID, false)
	if s.Kirli {
		t.Error("kirli bayrağı temizlenmeli")
	}
}

func TestGrupKaldirSekmeleriKorur(t *testing.T) {
	c := Yeni()
	s1 := c.SekmeAc("/kisiler", false)
	s2 := c.SekmeAc("/alarmlar", true)

	g := c.GrupOlustur("Saha", "mavi", []string{s1.ID, s2.ID})
	if s1.GrupID != g.ID || s2.GrupID != g.ID {
		t.Error("sekmeler gruba alınmalı")
	}

	c.GrupKaldir(g.ID)
	if len(c.Gruplar) != 0 {
		t.Error("grup silinmeli")
	}
	if len(c.Sekmeler) != 2 {
		t.Error("gruptaki sekmeler açık kalmalı")
	}
	if s1.GrupID != "" {
		t.Error("sekmenin grup bağı temizlenmeli")
	}
}

func TestSnapshotGeriYukleme(t *testing.T) {
	c := Yeni()
	s1 := c.SekmeAc("/kisiler/42", false)
	c.SekmeAc("/alarmlar", true)
	c.ScrollKaydet(s1.ID, 300)
	c.BaslikGuncelle(s1.ID, "Ali Yılmaz")

	veri, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	geri, err := YukleSnapshot(veri)
	if err != nil {
		t.Fatalf("geri yükleme: %v", err)
	}
	if len(geri.Sekmeler) != 2 {
		t.Fatalf("sekme sayısı = %d", len(geri.Sekmeler))
	}
	if geri.AktifID != s1.ID {
		t.Errorf("aktif = %s", geri.AktifID)
	}
	gs := geri.Aktif()
	if gs.ScrollKonumu != 300 {
		t.Errorf("scroll = %d", gs.ScrollKonumu)
	}
	if gs.Baslik != "Ali Yılmaz" {
		t.Errorf("başlık = %s", gs.Baslik)
	}
	if gs.Parametreler["id"] != "42" {
		t.Errorf("parametreler = %v", gs.Parametreler)
	}
}

func TestSnapshotBozukVeri(t *testing.T) {
	if _, err := YukleSnapshot([]byte(`{bozuk`)); err == nil {
		t.Error("bozuk JSON hata döndürmeli")
	}

	c, err := YukleSnapshot(nil)
	if err != nil {
		t.Fatalf("boş veri hata üretmemeli: %v", err)
	}
	if len(c.Sekmeler) != 0 {
		t.Error("boş veriden boş çalışma alanı beklenir")
	}
}

func TestSnapshotCozulemeyenYolYerTutucu(t *testing.T) {
	veri := []byte(`{"sekmeler":[{"id":"s1","yol":"/eski/sayfa","baslik":"Eski"}],"aktifId":"s1"}`)

	c, err := YukleSnapshot(veri)
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	s := c.Aktif()
	if s == nil {
		t.Fatal("aktif sekme korunmalı")
	}
	if s.SayfaAdi != YerTutucuSayfa.Ad {
		t.Errorf("çözülemeyen yol yer tutucuya bağlanmalı, sayfa = %s", s.SayfaAdi)
	}
	if s.Baslik != "Eski" {
		t.Errorf("kullanıcının gördüğü başlık korunmalı, başlık = %s", s.Baslik)
	}
}

func TestSnapshotBilinmeyenAktifOnarilir(t *testing.T) {
	veri := []byte(`{"sekmeler":[{"id":"s1","yol":"/kisiler","baslik":"Kişiler"}],"aktifId":"yok"}`)

	c, err := YukleSnapshot(veri)
	if err != nil {
		t.Fatalf("hata beklenmiyordu: %v", err)
	}
	if c.AktifID != "s1" {
		t.Errorf("ilk sekme aktif yapılmalı, aktif = %s", c.AktifID)
	}
}

func TestSayfaCoz(t *testing.T) {
	testler := []struct {
		yol     string
		sayfa   string
		eslesti bool
	}{
		{"/", "panel", true},
		{"/kisiler", "kisiler", true},
		{"/kisiler/", "kisiler", true},
		{"/kisiler/42", "kisi-detay", true},
		{"/kisiler/42?sekme=telefon", "kisi-detay", true},
		{"/kisiler/42/ekstra", "bulunamadi", false},
		{"/bilinmeyen", "bulunamadi", false},
	}
	for _, tc := range testler {
		sayfa, _, ok := SayfaCoz(tc.yol)
		if sayfa.Ad != tc.sayfa || ok != tc.eslesti {
			t.Errorf("SayfaCoz(%q) = %s/%v, beklenen %s/%v", tc.yol, sayfa.Ad, ok, tc.sayfa, tc.eslesti)
		}
	}
}
