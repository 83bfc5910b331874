// Package handler HTTP uç noktalarını ve yönlendirmeyi içerir.
// Handler'lar incedir: gövdeyi çözer, servisi çağırır, zarfı yazar.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
)

// basariZarfi başarılı yanıtın dış şeklidir. Hata zarfıyla aynı anda
// asla kullanılmaz; bir yanıtta ya data ya error bulunur.
type basariZarfi struct {
	Data       any              `json:"data"`
	Timestamp  string           `json:"timestamp"`
	Pagination *model.Sayfalama `json:"pagination,omitempty"`
}

func simdi() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// VeriYaz data zarfını verilen durum koduyla yazar.
func VeriYaz(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(basariZarfi{Data: data, Timestamp: simdi()})
}

// SayfaYaz liste yanıtını sayfalama metadata'sıyla yazar.
func SayfaYaz(w http.ResponseWriter, data any, sayfalama model.Sayfalama) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(basariZarfi{
		Data:       data,
		Timestamp:  simdi(),
		Pagination: &sayfalama,
	})
}

// govdeCoz istek gövdesini JSON olarak çözer. Bozuk gövde doğrulama
// hatasına çevrilir; ham çözümleme mesajı istemciye sızmaz.
func govdeCoz(r *http.Request, hedef any) *model.APIError {
	if err := json.NewDecoder(r.Body).Decode(hedef); err != nil {
		return model.NewValidationError(map[string]string{
			"body": "İstek gövdesi geçerli JSON değil.",
		})
	}
	return nil
}

// listeSecenekleri liste uçlarının sorgu parametrelerini çözer.
// Geçersiz sayısal değerler varsayılanlara düşer.
func listeSecenekleri(r *http.Request) model.ListeSecenekleri {
	q := r.URL.Query()
	opts := model.ListeSecenekleri{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	opts.Normalize()
	return opts
}

// hataIsle servis hatasını HTTP yanıtına çevirir. APIError olduğu gibi
// yazılır; diğer her şey bağlamla loglanıp jenerik 500 olur.
func hataIsle(w http.ResponseWriter, r *http.Request, err error, uretim bool) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.HataYaz(w, apiErr)
		return
	}

	slog.Error("unexpected handler error",
		"path", r.URL.Path,
		"method", r.Method,
		"error", err)
	middleware.HataYaz(w, model.NewInternalError(err.Error(), uretim))
}
