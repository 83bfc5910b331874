package workspace

import "strings"

// SayfaKaydi çalışma alanında sekme olarak açılabilen bir sayfayı
// tanımlar. Desen ":param" bölümleri içerebilir.
type SayfaKaydi struct {
	Ad            string
	Desen         string
	BaslikSablonu string
	Ikon          string
}

// YerTutucuSayfa çözülemeyen yollar için gösterilen sayfadır. Eski bir
// snapshot'tan gelen sekme, sayfası kaldırılmış olsa bile kaybolmaz.
var YerTutucuSayfa = SayfaKaydi{
	Ad:            "bulunamadi",
	Desen:         "",
	BaslikSablonu: "Sayfa bulunamadı",
	Ikon:          "soru",
}

// sayfalar statik sayfa kayıtlarıdır; çalışma zamanında değişmez.
var sayfalar = []SayfaKaydi{
	{Ad: "panel", Desen: "/", BaslikSablonu: "Panel", Ikon: "panel"},
	{Ad: "kisiler", Desen: "/kisiler", BaslikSablonu: "Kişiler", Ikon: "kisi"},
	{Ad: "kisi-detay", Desen: "/kisiler/:id", BaslikSablonu: "Kişi", Ikon: "kisi"},
	{Ad: "bolgeler", Desen: "/bolgeler", BaslikSablonu: "Bölgeler", Ikon: "harita"},
	{Ad: "bolge-detay", Desen: "/bolgeler/:id", BaslikSablonu: "Bölge", Ikon: "harita"},
	{Ad: "katalog", Desen: "/katalog", BaslikSablonu: "Marka ve Modeller", Ikon: "arac"},
	{Ad: "alarmlar", Desen: "/alarmlar", BaslikSablonu: "Alarmlar", Ikon: "zil"},
	{Ad: "alarm-detay", Desen: "/alarmlar/:id", BaslikSablonu: "Alarm", Ikon: "zil"},
	{Ad: "personeller", Desen: "/personeller", BaslikSablonu: "Personel", Ikon: "rozet"},
	{Ad: "denetim", Desen: "/denetim", BaslikSablonu: "Denetim Kayıtları", Ikon: "defter"},
}

// SayfaCoz yolu sayfa kaydına çözer ve desen parametrelerini çıkarır.
// Çözülemeyen yol için yer tutucu sayfa ve ok=false döner.
func SayfaCoz(yol string) (SayfaKaydi, map[string]string, bool) {
	yol = normalizeYol(yol)
	parcalar := yolParcala(yol)

	for _, sayfa := range sayfalar {
		params, eslesti := desenEslestir(yolParcala(sayfa.Desen), parcalar)
		if eslesti {
			return sayfa, params, true
		}
	}
	return YerTutucuSayfa, nil, false
}

func normalizeYol(yol string) string {
	if i := strings.IndexAny(yol, "?#"); i >= 0 {
		yol = yol[:i]
	}
	if yol == "" {
		return "/"
	}
	if !strings.HasPrefix(yol, "/") {
		yol = "/" + yol
	}
	if len(yol) > 1 {
		yol = strings.TrimRight(yol, "/")
	}
	return yol
}

func yolParcala(yol string) []string {
	yol = strings.Trim(yol, "/")
	if yol == "" {
		return nil
	}
	return strings.Split(yol, "/")
}

func desenEslestir(desen, yol []string) (map[string]string, bool) {
	if len(desen) != len(yol) {
		return nil, false
	}
	var params map[string]string
	for i, d := range desen {
		if strings.HasPrefix(d, ":") {
			if params == nil {
				params = map[string]string{}
			}
			params[d[1:]] = yol[i]
			continue
		}
		if d != yol[i] {
			return nil, false
		}
	}
	return params, true
}
