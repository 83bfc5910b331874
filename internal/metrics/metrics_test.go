package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrument middleware'inin istek sayacını artırdığını ve /metrics
// çıktısında göründüğünü doğrular.
func TestCollector_InstrumentVeHandler(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	h := c.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/kisiler", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, 418 bekleniyordu", rr.Code)
	}

	mr := httptest.NewRecorder()
	c.Handler().ServeHTTP(mr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := mr.Body.String()
	if !strings.Contains(body, "bplani_http_istek_toplam") {
		t.Error("metrik çıktısında istek sayacı yok")
	}
	if !strings.Contains(body, `status="418"`) {
		t.Error("yanıt kodu etiketi kaydedilmemiş")
	}
}

// Sayaç yardımcılarının panic etmeden çalıştığını doğrular.
func TestCollector_Sayaclar(t *testing.T) {
	c := NewCollector(nil)

	c.RecordDenetimYazildi()
	c.RecordDenetimHata()
	c.RecordRateLimitRet()
	c.RecordBildirimBasari()
	c.RecordBildirimHata()
}
