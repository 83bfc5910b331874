package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/alarm"
	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
)

// AlarmServiceInterface alarm handler'ının gereksindiği servis yüzeyi.
type AlarmServiceInterface interface {
	Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Alarm, int, error)
	Getir(ctx context.Context, id string) (*model.Alarm, error)
	Olustur(ctx context.Context, girdi alarm.Girdi, olusturanID string) (*model.Alarm, error)
	Guncelle(ctx context.Context, id string, girdi alarm.Girdi) (*model.Alarm, error)
	Sil(ctx context.Context, id string) error
	Durdur(ctx context.Context, id string) (*model.Alarm, error)
}

// AlarmHandler alarmların HTTP uçlarını işler.
type AlarmHandler struct {
	service AlarmServiceInterface
	uretim  bool
}

// NewAlarmHandler AlarmHandler üretir.
func NewAlarmHandler(service AlarmServiceInterface, uretim bool) *AlarmHandler {
	return &AlarmHandler{service: service, uretim: uretim}
}

// Listele alarmları sayfalamayla döndürür.
// GET /api/alarmlar
func (h *AlarmHandler) Listele(w http.ResponseWriter, r *http.Request) {
	opts := listeSecenekleri(r)
	liste, total, err := h.service.Listele(r.Context(), opts)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	if liste == nil {
		liste = []*model.Alarm{}
	}
	SayfaYaz(w, liste, model.YeniSayfalama(opts, total))
}

// Getir tek alarmı döndürür.
// GET /api/alarmlar/{id}
func (h *AlarmHandler) Getir(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Getir(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, a)
}

// Olustur yeni alarm kurar.
// POST /api/alarmlar
func (h *AlarmHandler) Olustur(w http.ResponseWriter, r *http.Request) {
	var girdi alarm.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	var olusturanID string
	if oturum, ok := auth.OturumFromContext(r.Context()); ok {
		olusturanID = oturum.PersonelID
	}

	a, err := h.service.Olustur(r.Context(), girdi, olusturanID)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, a)
}

// Guncelle alarmı günceller; tetik zamanı değişirse alarm yeniden kurulur.
// PUT /api/alarmlar/{id}
func (h *AlarmHandler) Guncelle(w http.ResponseWriter, r *http.Request) {
	var girdi alarm.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	a, err := h.service.Guncelle(r.Context(), chi.URLParam(r, "id"), girdi)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, a)
}

// Sil alarmı siler.
// DELETE /api/alarmlar/{id}
func (h *AlarmHandler) Sil(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Sil(r.Context(), id); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, map[string]string{"silinen": id})
}

// Durdur alarm bildirimlerini kapatır; alarm kaydı kalır.
// POST /api/alarmlar/{id}/durdur
func (h *AlarmHandler) Durdur(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Durdur(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, a)
}
