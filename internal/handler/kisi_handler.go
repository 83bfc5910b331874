package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/kisi"
	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
)

// KisiServiceInterface kişi handler'ının gereksindiği servis yüzeyi.
type KisiServiceInterface interface {
	Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Kisi, int, error)
	Getir(ctx context.Context, id string) (*model.Kisi, error)
	Olustur(ctx context.Context, girdi kisi.Girdi, olusturanID string) (*model.Kisi, error)
	Guncelle(ctx context.Context, id string, girdi kisi.Girdi) (*model.Kisi, error)
	Sil(ctx context.Context, id string) error
	Arsivle(ctx context.Context, id string) (*model.Kisi, error)
	BatchSil(ctx context.Context, ids []string) (model.BatchSonuc, error)
	IliskiSayilari(ctx context.Context, id string) (model.IliskiSayimi, error)
	Telefonlar(ctx context.Context, kisiID string) ([]*model.Telefon, error)
	TelefonEkle(ctx context.Context, kisiID string, girdi kisi.TelefonGirdisi) (*model.Telefon, error)
	TelefonSil(ctx context.Context, kisiID, telefonID string) error
}

// KisiHandler kişi kayıtlarının HTTP uçlarını işler.
type KisiHandler struct {
	service KisiServiceInterface
	uretim  bool
}

// NewKisiHandler KisiHandler üretir.
func NewKisiHandler(service KisiServiceInterface, uretim bool) *KisiHandler {
	return &KisiHandler{service: service, uretim: uretim}
}

// Listele kişi listesini sayfalamayla döndürür.
// GET /api/kisiler
func (h *KisiHandler) Listele(w http.ResponseWriter, r *http.Request) {
	opts := listeSecenekleri(r)
	liste, total, err := h.service.Listele(r.Context(), opts)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	if liste == nil {
		liste = []*model.Kisi{}
	}
	SayfaYaz(w, liste, model.YeniSayfalama(opts, total))
}

// Getir tek kişiyi döndürür.
// GET /api/kisiler/{id}
func (h *KisiHandler) Getir(w http.ResponseWriter, r *http.Request) {
	k, err := h.service.Getir(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, k)
}

// Olustur yeni kişi kaydı açar.
// POST /api/kisiler
func (h *KisiHandler) Olustur(w http.ResponseWriter, r *http.Request) {
	var girdi kisi.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	var olusturanID string
	if oturum, ok := auth.OturumFromContext(r.Context()); ok {
		olusturanID = oturum.PersonelID
	}

	k, err := h.service.Olustur(r.Context(), girdi, olusturanID)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, k)
}

// Guncelle kişi kaydını günceller.
// PUT /api/kisiler/{id}
func (h *KisiHandler) Guncelle(w http.ResponseWriter, r *http.Request) {
	var girdi kisi.Girdi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	k, err := h.service.Guncelle(r.Context(), chi.URLParam(r, "id"), girdi)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, k)
}

// Sil kişiyi kalıcı olarak siler. Bağımlı kaydı olan kişi silinmez.
// DELETE /api/kisiler/{id}
func (h *KisiHandler) Sil(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Sil(r.Context(), id); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, map[string]string{"silinen": id})
}

// Arsivle kişiyi silmeden listelerden çıkarır.
// POST /api/kisiler/{id}/arsivle
func (h *KisiHandler) Arsivle(w http.ResponseWriter, r *http.Request) {
	k, err := h.service.Arsivle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, k)
}

type topluSilIstegi struct {
	IDler []string `json:"idler"`
}

// TopluSil kimlik listesini tek transaction'da arşivle/sil diye böler.
// POST /api/kisiler/toplu-sil
func (h *KisiHandler) TopluSil(w http.ResponseWriter, r *http.Request) {
	var istek topluSilIstegi
	if apiErr := govdeCoz(r, &istek); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	sonuc, err := h.service.BatchSil(r.Context(), istek.IDler)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, sonuc)
}

// Iliskiler kişinin bağımlı kayıt sayılarını döndürür.
// GET /api/kisiler/{id}/iliskiler
func (h *KisiHandler) Iliskiler(w http.ResponseWriter, r *http.Request) {
	sayim, err := h.service.IliskiSayilari(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, sayim)
}

// Telefonlar kişinin telefonlarını listeler.
// GET /api/kisiler/{id}/telefonlar
func (h *KisiHandler) Telefonlar(w http.ResponseWriter, r *http.Request) {
	liste, err := h.service.Telefonlar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	if liste == nil {
		liste = []*model.Telefon{}
	}
	VeriYaz(w, http.StatusOK, liste)
}

// TelefonEkle kişiye telefon ekler.
// POST /api/kisiler/{id}/telefonlar
func (h *KisiHandler) TelefonEkle(w http.ResponseWriter, r *http.Request) {
	var girdi kisi.TelefonGirdisi
	if apiErr := govdeCoz(r, &girdi); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	tel, err := h.service.TelefonEkle(r.Context(), chi.URLParam(r, "id"), girdi)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusCreated, tel)
}

// TelefonSil kişinin telefonunu siler.
// DELETE /api/kisiler/{id}/telefonlar/{telefonId}
func (h *KisiHandler) TelefonSil(w http.ResponseWriter, r *http.Request) {
	err := h.service.TelefonSil(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "telefonId"))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, map[string]string{"silinen": chi.URLParam(r, "telefonId")})
}
