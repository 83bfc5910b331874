package handler

import (
	"io"
	"net/http"

	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/upload"
)

// Yukleyici dosya saklama yüzeyidir.
type Yukleyici interface {
	Kaydet(r io.Reader, beyanBoyut int64) (*upload.Sonuc, error)
}

// UploadHandler multipart dosya yükleme ucunu işler.
type UploadHandler struct {
	store  Yukleyici
	uretim bool
}

// NewUploadHandler UploadHandler üretir.
func NewUploadHandler(store Yukleyici, uretim bool) *UploadHandler {
	return &UploadHandler{store: store, uretim: uretim}
}

// Yukle "dosya" alanındaki tek dosyayı doğrulayıp diske yazar ve
// public URL'sini döndürür.
// POST /api/yuklemeler
func (h *UploadHandler) Yukle(w http.ResponseWriter, r *http.Request) {
	dosya, bilgi, err := r.FormFile("dosya")
	if err != nil {
		middleware.HataYaz(w, model.NewValidationError(map[string]string{
			"dosya": "İstekte 'dosya' alanı bulunamadı.",
		}))
		return
	}
	defer dosya.Close()

	sonuc, err := h.store.Kaydet(dosya, bilgi.Size)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, sonuc)
}
