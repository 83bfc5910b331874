package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/altay-yazilim/bplani/internal/model"
)

// hataGovdesi birleşik hata zarfının gövdesidir. Başarı zarfıyla aynı
// timestamp alanını taşır; error ve data alanları asla birlikte dönmez.
type hataGovdesi struct {
	Error     hataDetay `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type hataDetay struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HataYaz APIError'u hata zarfı olarak yazar.
func HataYaz(w http.ResponseWriter, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.HTTPStatus())
	json.NewEncoder(w).Encode(hataGovdesi{
		Error: hataDetay{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// YetkisizYaz 401 hata zarfı yazar.
func YetkisizYaz(w http.ResponseWriter) {
	HataYaz(w, model.NewAuthRequiredError())
}
