package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/model"
)

// DenetimOkuyucu denetim geçmişi sorgusunun yüzeyidir. Denetim kaydı
// append-only'dir; bu uç yalnızca okur.
type DenetimOkuyucu interface {
	Gecmis(ctx context.Context, entityTipi, entityID string, limit int) ([]*model.DenetimKaydi, error)
}

// DenetimHandler denetim geçmişinin HTTP ucunu işler.
type DenetimHandler struct {
	okuyucu DenetimOkuyucu
	uretim  bool
}

// NewDenetimHandler DenetimHandler üretir.
func NewDenetimHandler(okuyucu DenetimOkuyucu, uretim bool) *DenetimHandler {
	return &DenetimHandler{okuyucu: okuyucu, uretim: uretim}
}

// Gecmis bir kaydın denetim geçmişini yeniden eskiye döndürür.
// GET /api/denetim/{entityTipi}/{entityId}
func (h *DenetimHandler) Gecmis(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}

	liste, err := h.okuyucu.Gecmis(r.Context(),
		chi.URLParam(r, "entityTipi"),
		chi.URLParam(r, "entityId"),
		limit)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	if liste == nil {
		liste = []*model.DenetimKaydi{}
	}
	VeriYaz(w, http.StatusOK, liste)
}
