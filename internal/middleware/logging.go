package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/altay-yazilim/bplani/internal/auth"
)

// statusRecorder http.ResponseWriter'ı sarar ve durum kodunu kaydeder.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// NewLoggingMiddleware her istek için JSON yapılandırılmış log yazan
// ara katmanı döndürür. Oturumlu isteklerde personel kimliği eklenir.
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("sure_ms", float64(time.Since(start).Nanoseconds())/float64(time.Millisecond)),
			}
			if oturum, ok := auth.OturumFromContext(r.Context()); ok {
				attrs = append(attrs, slog.String("personel_id", oturum.PersonelID))
			}
			logger.Info("istek tamamlandı", attrs...)
		})
	}
}
