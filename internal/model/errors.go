package model

import (
	"fmt"
	"net/http"
	"time"
)

// APIError birleşik hata formatını temsil eder.
// UI'da gösterilecek neden kategorisini ve kullanıcıya önerilen
// aksiyonu içerir. Mesajlar Türkçe üretilir.
type APIError struct {
	Code     string         // makine tarafından okunan hata kodu
	Message  string         // kullanıcıya gösterilen mesaj
	Category string         // kategori: auth, validation, kayit, sistem
	Action   string         // kullanıcıya önerilen aksiyon
	Details  map[string]any // alan bazlı detaylar (fieldErrors vb.)
}

// Error, error arayüzünü uygular.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Tanımlı hata kodları
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeAuthRequired = "AUTH_REQUIRED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeDependents   = "DEPENDENTS_EXIST"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// HTTPStatus hata koduna karşılık gelen HTTP durum kodunu döndürür.
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidation, ErrCodeDependents:
		return http.StatusBadRequest
	case ErrCodeAuthRequired:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError alan bazlı doğrulama hatası üretir.
// fieldErrors anahtarı alan adı, değeri Türkçe ihlal mesajıdır.
func NewValidationError(fieldErrors map[string]string) *APIError {
	details := make(map[string]any, 1)
	details["fieldErrors"] = fieldErrors
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  "Gönderilen veriler doğrulanamadı.",
		Category: "validation",
		Action:   "Hatalı alanları düzeltip tekrar deneyin.",
		Details:  details,
	}
}

// NewAuthRequiredError kimlik doğrulaması gerektiren istek için hata üretir.
func NewAuthRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthRequired,
		Message:  "Bu işlem için oturum açmanız gerekiyor.",
		Category: "auth",
		Action:   "Giriş sayfasından oturum açın.",
	}
}

// NewForbiddenError yetkisiz erişim hatası üretir.
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "Bu işlem için yetkiniz bulunmuyor.",
		Category: "auth",
		Action:   "Yetkili bir kullanıcıyla oturum açın veya yöneticinize başvurun.",
	}
}

// NewNotFoundError belirtilen kayıt bulunamadığında hata üretir.
func NewNotFoundError(entity, id string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("İstenen %s kaydı bulunamadı: %s", entity, id),
		Category: "kayit",
		Action:   "Kayıt kimliğini kontrol edin.",
	}
}

// NewConflictError teklik ihlali hatası üretir.
// Ham veritabanı hatası asla bu mesaja taşınmaz.
func NewConflictError(mesaj string) *APIError {
	return &APIError{
		Code:     ErrCodeConflict,
		Message:  mesaj,
		Category: "kayit",
		Action:   "Farklı bir değerle tekrar deneyin.",
	}
}

// NewDependentsError bağımlı kayıtları olan bir kaydın silinme
// girişiminde hata üretir; silme reddedilir, kademeli silme yapılmaz.
func NewDependentsError(entity string, sayim IliskiSayimi) *APIError {
	return &APIError{
		Code:     ErrCodeDependents,
		Message:  fmt.Sprintf("Bu %s kaydına bağlı %d kayıt var; önce bağımlı kayıtlar kaldırılmalı.", entity, sayim.Toplam()),
		Category: "kayit",
		Action:   "Önce bağımlı kayıtları silin veya kaydı arşivleyin.",
		Details:  map[string]any{"iliskiler": sayim},
	}
}

// NewRateLimitedError istek sınırı aşıldığında hata üretir.
// reset, pencerenin sıfırlanacağı zamandır ve detaylarda taşınır.
func NewRateLimitedError(reset time.Time) *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "Çok fazla istek gönderildi. Lütfen bekleyip tekrar deneyin.",
		Category: "sistem",
		Action:   "Belirtilen süre geçtikten sonra tekrar deneyin.",
		Details:  map[string]any{"reset": reset.UTC().Format(time.RFC3339)},
	}
}

// NewInternalError beklenmeyen hatalar için jenerik 500 hatası üretir.
// uretim true ise asıl mesaj gizlenir, yalnızca loglarda kalır.
func NewInternalError(mesaj string, uretim bool) *APIError {
	if uretim || mesaj == "" {
		mesaj = "Beklenmeyen bir hata oluştu."
	}
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  mesaj,
		Category: "sistem",
		Action:   "Lütfen daha sonra tekrar deneyin; sorun sürerse yöneticinize başvurun.",
	}
}
