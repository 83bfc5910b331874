package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/altay-yazilim/bplani/internal/model"
)

// NewRecoveryMiddleware panic'i yakalayıp 500 hata zarfına çeviren
// ara katmanı döndürür. Süreç hiçbir istekte çökmez.
func NewRecoveryMiddleware(uretim bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic yakalandı",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					HataYaz(w, model.NewInternalError("", uretim))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
