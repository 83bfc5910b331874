package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/bolge"
	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
)

// BolgeServiceInterface bölge handler'ının gereksindiği servis yüzeyi.
// Yazma fiillerinin rol denetimi serviste yapılır.
type BolgeServiceInterface interface {
	Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Bolge, int, error)
	Getir(ctx context.Context, id string) (*model.Bolge, error)
	Olustur(ctx context.Context, girdi bolge.Girdi) (*model.Bolge, error)
	Guncelle(ctx context.Context, id string, girdi bolge.Girdi) (*model.Bolge, error)
	Sil(ctx context.Context, id string) error
}

// BolgeHandler bölge ağacının HTTP uçlarını işler.
type BolgeHandler struct {
	service BolgeServiceInterface
	uretim  bool
}

// NewBolgeHandler BolgeHandler üretir.
func NewBolgeHandler(service BolgeServiceInterface, uretim bool) *BolgeHandler {
	return &BolgeHandler{service: service, uretim: uretim}
}

// Listele bölgeleri sayfalamayla döndürür.
// GET /api/bolgeler
func (h *BolgeHandler) Listele(w http.ResponseWriter, r *http.Request) {
	opts := listeSecenekleri(r)
	liste, total, err := h.service.Listele(r.Context(), opts)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	if liste == nil {
		liste = []*model.Bolge{}
	}
	SayfaYaz(w, liste, model.YeniSayfalama(opts, total))
}

// Getir tek bölgeyi döndürür.
// GET /api/bolgeler/{id}
func (h *BolgeHandler) Getir(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Getir(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, b)
}

// Olustur yeni bölge açar.
// POST /api/bolgeler
func (h *BolgeHandler) Olustur(w http.ResponseWriter, r *http.Request) {
	var girdi bolge.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	b, err := h.service.Olustur(r.Context(), girdi)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, b)
}

// Guncelle bölgeyi günceller.
// PUT /api/bolgeler/{id}
func (h *BolgeHandler) Guncelle(w http.ResponseWriter, r *http.Request) {
	var girdi bolge.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	b, err := h.service.Guncelle(r.Context(), chi.URLParam(r, "id"), girdi)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, b)
}

// Sil bölgeyi siler. Alt bölgesi olan bölge silinmez.
// DELETE /api/bolgeler/{id}
func (h *BolgeHandler) Sil(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Sil(r.Context(), id); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, map[string]string{"silinen": id})
}
