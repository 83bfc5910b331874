package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/personel"
)

// PersonelServiceInterface personel handler'ının gereksindiği servis
// yüzeyi. Tüm yönetim fiilleri serviste ADMIN rolüne bağlanır.
type PersonelServiceInterface interface {
	Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Personel, int, error)
	Getir(ctx context.Context, id string) (*model.Personel, error)
	Olustur(ctx context.Context, girdi personel.Girdi) (*model.Personel, error)
	Guncelle(ctx context.Context, id string, girdi personel.Girdi) (*model.Personel, error)
	Sil(ctx context.Context, id string) error
}

// PersonelHandler personel yönetiminin HTTP uçlarını işler.
type PersonelHandler struct {
	service PersonelServiceInterface
	uretim  bool
}

// NewPersonelHandler PersonelHandler üretir.
func NewPersonelHandler(service PersonelServiceInterface, uretim bool) *PersonelHandler {
	return &PersonelHandler{service: service, uretim: uretim}
}

// Listele personel listesini döndürür.
// GET /api/personeller
func (h *PersonelHandler) Listele(w http.ResponseWriter, r *http.Request) {
	opts := listeSecenekleri(r)
	liste, total, err := h.service.Listele(r.Context(), opts)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	yanit := make([]personelYaniti, 0, len(liste))
	for _, p := range liste {
		yanit = append(yanit, toPersonelYaniti(p))
	}
	SayfaYaz(w, yanit, model.YeniSayfalama(opts, total))
}

// Getir tek personeli döndürür.
// GET /api/personeller/{id}
func (h *PersonelHandler) Getir(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Getir(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, toPersonelYaniti(p))
}

// Olustur yeni personel hesabı açar.
// POST /api/personeller
func (h *PersonelHandler) Olustur(w http.ResponseWriter, r *http.Request) {
	var girdi personel.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	p, err := h.service.Olustur(r.Context(), girdi)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, toPersonelYaniti(p))
}

// Guncelle personel kaydını günceller. Kendi rolünü düşürme ve kendi
// hesabını pasifleştirme serviste engellenir.
// PUT /api/personeller/{id}
func (h *PersonelHandler) Guncelle(w http.ResponseWriter, r *http.Request) {
	var girdi personel.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	p, err := h.service.Guncelle(r.Context(), chi.URLParam(r, "id"), girdi)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, toPersonelYaniti(p))
}

// Sil personel hesabını siler.
// DELETE /api/personeller/{id}
func (h *PersonelHandler) Sil(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Sil(r.Context(), id); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, map[string]string{"silinen": id})
}
