package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
)

// KatalogServiceInterface katalog handler'ının gereksindiği servis
// yüzeyi. Mutasyonlar ADMIN veya MANAGER rolü ister; denetim serviste.
type KatalogServiceInterface interface {
	Markalar(ctx context.Context) ([]*model.Marka, error)
	MarkaOlustur(ctx context.Context, ad string) (*model.Marka, error)
	MarkaSil(ctx context.Context, id string) error
	Modeller(ctx context.Context, markaID string) ([]*model.AracModeli, error)
	ModelOlustur(ctx context.Context, markaID, ad string) (*model.AracModeli, error)
	ModelSil(ctx context.Context, id string) error
}

// KatalogHandler marka/model kataloğunun HTTP uçlarını işler.
type KatalogHandler struct {
	service KatalogServiceInterface
	uretim  bool
}

// NewKatalogHandler KatalogHandler üretir.
func NewKatalogHandler(service KatalogServiceInterface, uretim bool) *KatalogHandler {
	return &KatalogHandler{service: service, uretim: uretim}
}

type adIstegi struct {
	Ad string `json:"ad"`
}

// Markalar tüm markaları döndürür.
// GET /api/katalog/markalar
func (h *KatalogHandler) Markalar(w http.ResponseWriter, r *http.Request) {
	liste, err := h.service.Markalar(r.Context())
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	if liste == nil {
		liste = []*model.Marka{}
	}
	VeriYaz(w, http.StatusOK, liste)
}

// MarkaOlustur yeni marka ekler.
// POST /api/katalog/markalar
func (h *KatalogHandler) MarkaOlustur(w http.ResponseWriter, r *http.Request) {
	var istek adIstegi
	if apiErr := govdeCoz(r, &istek); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	m, err := h.service.MarkaOlustur(r.Context(), istek.Ad)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, m)
}

// MarkaSil markayı siler. Modeli olan marka silinmez.
// DELETE /api/katalog/markalar/{id}
func (h *KatalogHandler) MarkaSil(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.MarkaSil(r.Context(), id); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, map[string]string{"silinen": id})
}

// Modeller markanın modellerini döndürür.
// GET /api/katalog/markalar/{id}/modeller
func (h *KatalogHandler) Modeller(w http.ResponseWriter, r *http.Request) {
	liste, err := h.service.Modeller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	if liste == nil {
		liste = []*model.AracModeli{}
	}
	VeriYaz(w, http.StatusOK, liste)
}

// ModelOlustur markaya model ekler.
// POST /api/katalog/markalar/{id}/modeller
func (h *KatalogHandler) ModelOlustur(w http.ResponseWriter, r *http.Request) {
	var istek adIstegi
	if apiErr := govdeCoz(r, &istek); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	m, err := h.service.ModelOlustur(r.Context(), chi.URLParam(r, "id"), istek.Ad)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, m)
}

// ModelSil modeli siler.
// DELETE /api/katalog/modeller/{id}
func (h *KatalogHandler) ModelSil(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.ModelSil(r.Context(), id); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, map[string]string{"silinen": id})
}
