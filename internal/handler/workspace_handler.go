package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/altay-yazilim/bplani/internal/auth"
	"github.com/altay-yazilim/bplani/internal/middleware"
	"github.com/altay-yazilim/bplani/internal/model"
	"github.com/altay-yazilim/bplani/internal/workspace"
)

// snapshotBoyutTavani çalışma alanı snapshot'ının kabul edilen en
// büyük gövde boyutudur.
const snapshotBoyutTavani = 256 << 10

// WorkspaceServiceInterface çalışma alanı handler'ının servis yüzeyi.
type WorkspaceServiceInterface interface {
	Yukle(ctx context.Context, personelID string) (*workspace.CalismaAlani, error)
	Kaydet(ctx context.Context, personelID string, c *workspace.CalismaAlani) error
	TercihleriYukle(ctx context.Context, personelID string) (workspace.Tercihler, error)
	TercihleriKaydet(ctx context.Context, personelID string, t workspace.Tercihler) error
}

// WorkspaceHandler sekme çalışma alanının kalıcılık uçlarını işler.
// Durum makinesi istemcide koşar; sunucu onarılmış snapshot saklar.
type WorkspaceHandler struct {
	service WorkspaceServiceInterface
	uretim  bool
}

// NewWorkspaceHandler WorkspaceHandler üretir.
func NewWorkspaceHandler(service WorkspaceServiceInterface, uretim bool) *WorkspaceHandler {
	return &WorkspaceHandler{service: service, uretim: uretim}
}

func oturumPersonelID(r *http.Request) (string, *model.APIError) {
	oturum, ok := auth.OturumFromContext(r.Context())
	if !ok {
		return "", model.NewAuthRequiredError()
	}
	return oturum.PersonelID, nil
}

// Getir kullanıcının çalışma alanını döndürür. Kayıt yoksa boş
// çalışma alanı döner; istemci ilk sekmesini açar.
// GET /api/workspace
func (h *WorkspaceHandler) Getir(w http.ResponseWriter, r *http.Request) {
	personelID, apiErr := oturumPersonelID(r)
	if apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	c, err := h.service.Yukle(r.Context(), personelID)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, c)
}

// Kaydet istemcinin gönderdiği snapshot'ı onarıp saklar. Bozuk gövde
// 400 üretir; onarım bilinen tutarsızlıkları sessizce düzeltir.
// PUT /api/workspace
func (h *WorkspaceHandler) Kaydet(w http.ResponseWriter, r *http.Request) {
	personelID, apiErr := oturumPersonelID(r)
	if apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	veri, err := io.ReadAll(io.LimitReader(r.Body, snapshotBoyutTavani))
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}

	c, err := workspace.YukleSnapshot(veri)
	if err != nil {
		middleware.HataYaz(w, model.NewValidationError(map[string]string{
			"body": "Çalışma alanı snapshot'ı çözülemedi.",
		}))
		return
	}

	if err := h.service.Kaydet(r.Context(), personelID, c); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, c)
}

// Tercihler kullanıcının locale ve tema seçimini döndürür.
// GET /api/tercihler
func (h *WorkspaceHandler) Tercihler(w http.ResponseWriter, r *http.Request) {
	personelID, apiErr := oturumPersonelID(r)
	if apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	t, err := h.service.TercihleriYukle(r.Context(), personelID)
	if err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, t)
}

// TercihKaydet locale ve tema seçimini saklar; yalnız dolu alanlar yazılır.
// PUT /api/tercihler
func (h *WorkspaceHandler) TercihKaydet(w http.ResponseWriter, r *http.Request) {
	personelID, apiErr := oturumPersonelID(r)
	if apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	var t workspace.Tercihler
	if apiErr := govdeCoz(r, &t); apiErr != nil {
		middleware.HataYaz(w, apiErr)
		return
	}

	if err := h.service.TercihleriKaydet(r.Context(), personelID, t); err != nil {
		hataIsle(w, r, err, h.uretim)
		return
	}
	VeriYaz(w, http.StatusOK, t)
}
