package notify

import (
	"fmt"
	"time"

	"github.com/altay-yazilim/bplani/internal/model"
)

// BildirimSonucu HTTP durum koduna göre bildirim sonucunun sınıfıdır.
type BildirimSonucu int

const (
	// BildirimOK bildirim teslim edildi (2xx).
	BildirimOK BildirimSonucu = iota
	// BildirimDur kalıcı hata, denemeye devam edilmez (404/410/401/403).
	BildirimDur
	// BildirimBackoff geçici hata, üstel gecikmeyle tekrar denenir (429/5xx).
	BildirimBackoff
	// BildirimBilinmeyen sınıflanamayan durum kodu; backoff uygulanır.
	BildirimBilinmeyen
)

const (
	// ilkGecikme üstel backoff'un ilk gecikmesidir.
	ilkGecikme = 30 * time.Second
	// azamiGecikme üstel backoff'un tavanıdır.
	azamiGecikme = time.Hour
	// hataTavani ardışık hata sayısı bu eşiğe ulaşınca alarm durdurulur.
	hataTavani = 10
)

// DurumSinifla HTTP durum kodunu bildirim sonucuna çevirir.
func DurumSinifla(durumKodu int) BildirimSonucu {
	switch {
	case durumKodu >= 200 && durumKodu < 300:
		return BildirimOK
	case durumKodu == 404 || durumKodu == 410:
		return BildirimDur
	case durumKodu == 401 || durumKodu == 403:
		return BildirimDur
	case durumKodu == 429:
		return BildirimBackoff
	case durumKodu >= 500:
		return BildirimBackoff
	default:
		return BildirimBilinmeyen
	}
}

// GecikmeHesapla ardışık hata sayısına göre üstel gecikme döndürür.
// İlk hata 30 saniye, her hatada iki katına çıkar, tavan 1 saattir.
func GecikmeHesapla(ardisikHata int) time.Duration {
	gecikme := ilkGecikme
	for i := 0; i < ardisikHata; i++ {
		gecikme *= 2
		if gecikme > azamiGecikme {
			return azamiGecikme
		}
	}
	return gecikme
}

// UygulaBasari bildirim teslim edilince alarmı tetiklenmiş duruma alır.
func UygulaBasari(a *model.Alarm) {
	a.Durum = model.AlarmTetiklendi
	a.ArdisikHata = 0
	a.HataMesaji = ""
	a.SonrakiDeneme = nil
}

// UygulaDur kalıcı hatada bildirimleri durdurur ve nedeni kaydeder.
func UygulaDur(a *model.Alarm, neden string) {
	a.Durum = model.AlarmDurduruldu
	a.HataMesaji = neden
	a.SonrakiDeneme = nil
}

// UygulaBackoff geçici hatada sayacı artırır ve sonraki denemeyi üstel
// gecikmeyle kurar. Hata tavanına ulaşan alarm durdurulur.
func UygulaBackoff(a *model.Alarm, neden string) {
	a.ArdisikHata++
	a.HataMesaji = neden

	if a.ArdisikHata >= hataTavani {
		a.Durum = model.AlarmDurduruldu
		a.HataMesaji = fmt.Sprintf("%d ardışık hata sonrası bildirim durduruldu: %s", a.ArdisikHata, neden)
		a.SonrakiDeneme = nil
		return
	}
	sonraki := time.Now().Add(GecikmeHesapla(a.ArdisikHata - 1))
	a.SonrakiDeneme = &sonraki
}
