// Package metrics Prometheus metriklerinin toplanması ve yayınını sağlar.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector uygulama metriklerini toplayan implementasyondur.
type Collector struct {
	httpIstekler    *prometheus.CounterVec
	httpSure        *prometheus.HistogramVec
	denetimYazildi  prometheus.Counter
	denetimHata     prometheus.Counter
	rateLimitRet    prometheus.Counter
	bildirimBasari  prometheus.Counter
	bildirimHata    prometheus.Counter
	registry        *prometheus.Registry
}

// NewCollector yeni Collector oluşturur ve metrikleri verilen
// registry'ye kaydeder. reg nil ise yeni bir registry açılır.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		registry: reg,
		httpIstekler: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bplani_http_istek_toplam",
			Help: "HTTP isteklerinin method/path/status bazında toplamı",
		}, []string{"method", "path", "status"}),
		httpSure: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bplani_http_sure_saniye",
			Help:    "HTTP istek süreleri (saniye)",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		denetimYazildi: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bplani_denetim_kayit_toplam",
			Help: "Yazılan denetim kaydı toplamı",
		}),
		denetimHata: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bplani_denetim_hata_toplam",
			Help: "Başarısız denetim yazma toplamı (best-effort, istek etkilenmez)",
		}),
		rateLimitRet: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bplani_rate_limit_ret_toplam",
			Help: "429 ile reddedilen istek toplamı",
		}),
		bildirimBasari: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bplani_bildirim_basari_toplam",
			Help: "Başarıyla gönderilen alarm bildirimi toplamı",
		}),
		bildirimHata: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bplani_bildirim_hata_toplam",
			Help: "Başarısız alarm bildirimi toplamı",
		}),
	}

	reg.MustRegister(
		c.httpIstekler, c.httpSure,
		c.denetimYazildi, c.denetimHata,
		c.rateLimitRet,
		c.bildirimBasari, c.bildirimHata,
	)

	return c
}

// RecordDenetimYazildi başarılı denetim yazmasını sayar.
func (c *Collector) RecordDenetimYazildi() { c.denetimYazildi.Inc() }

// RecordDenetimHata başarısız denetim yazmasını sayar.
func (c *Collector) RecordDenetimHata() { c.denetimHata.Inc() }

// RecordRateLimitRet 429 ile reddedilen isteği sayar.
func (c *Collector) RecordRateLimitRet() { c.rateLimitRet.Inc() }

// RecordBildirimBasari başarılı webhook bildirimini sayar.
func (c *Collector) RecordBildirimBasari() { c.bildirimBasari.Inc() }

// RecordBildirimHata başarısız webhook bildirimini sayar.
func (c *Collector) RecordBildirimHata() { c.bildirimHata.Inc() }

// Handler /metrics ucu için Prometheus handler'ı döndürür.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// statusWriter yanıt kodunu yakalamak için ResponseWriter sarmalayıcısıdır.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Instrument HTTP isteklerini sayaç ve histogramla ölçen middleware döndürür.
func (c *Collector) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		sure := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)
		c.httpIstekler.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		c.httpSure.WithLabelValues(r.Method, r.URL.Path).Observe(sure)
	})
}
