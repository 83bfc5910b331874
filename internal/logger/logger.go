// Package logger JSON yapılandırılmış log kurulumunu sağlar.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup JSON çıktılı bir slog.Logger oluşturup döndürür.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault JSON yapılandırılmış logu global logger olarak ayarlar.
// w nil ise os.Stdout kullanılır; üretimde os.Stdout beklenir.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}
