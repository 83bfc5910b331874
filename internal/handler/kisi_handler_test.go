package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/altay-yazilim/bplani/internal/kisi"
	"github.com/altay-yazilim/bplani/internal/model"
)

type sahteKisiService struct {
	listeleFn  func(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Kisi, int, error)
	getirFn    func(ctx context.Context, id string) (*model.Kisi, error)
	olusturFn  func(ctx context.Context, girdi kisi.Girdi, olusturanID string) (*model.Kisi, error)
	silFn      func(ctx context.Context, id string) error
	batchSilFn func(ctx context.Context, ids []string) (model.BatchSonuc, error)
}

func (s *sahteKisiService) Listele(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Kisi, int, error) {
	return s.listeleFn(ctx, opts)
}

func (s *sahteKisiService) Getir(ctx context.Context, id string) (*model.Kisi, error) {
	return s.getirFn(ctx, id)
}

func (s *sahteKisiService) Olustur(ctx context.Context, girdi kisi.Girdi, olusturanID string) (*model.Kisi, error) {
	return s.olusturFn(ctx, girdi, olusturanID)
}

func (s *sahteKisiService) Guncelle(ctx context.Context, id string, girdi kisi.Girdi) (*model.Kisi, error) {
	return nil, nil
}

func (s *sahteKisiService) Sil(ctx context.Context, id string) error {
	return s.silFn(ctx, id)
}

func (s *sahteKisiService) Arsivle(ctx context.Context, id string) (*model.Kisi, error) {
	return nil, nil
}

func (s *sahteKisiService) BatchSil(ctx context.Context, ids []string) (model.BatchSonuc, error) {
	return s.batchSilFn(ctx, ids)
}

func (s *sahteKisiService) IliskiSayilari(ctx context.Context, id string) (model.IliskiSayimi, error) {
	return model.IliskiSayimi{}, nil
}

func (s *sahteKisiService) Telefonlar(ctx context.Context, kisiID string) ([]*model.Telefon, error) {
	return nil, nil
}

func (s *sahteKisiService) TelefonEkle(ctx context.Context, kisiID string, girdi kisi.TelefonGirdisi) (*model.Telefon, error) {
	return nil, nil
}

func (s *sahteKisiService) TelefonSil(ctx context.Context, kisiID, telefonID string) error {
	return nil
}

func kisiRouter(service KisiServiceInterface) http.Handler {
	h := NewKisiHandler(service, true)
	r := chi.NewRouter()
	r.Get("/api/kisiler", h.Listele)
	r.Post("/api/kisiler", h.Olustur)
	r.Post("/api/kisiler/toplu-sil", h.TopluSil)
	r.Get("/api/kisiler/{id}", h.Getir)
	r.Delete("/api/kisiler/{id}", h.Sil)
	return r
}

func TestKisiListeleSayfalama(t *testing.T) {
	service := &sahteKisiService{
		listeleFn: func(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Kisi, int, error) {
			return []*model.Kisi{{ID: "k1", Ad: "Ali"}}, 41, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/kisiler?page=2&limit=20", nil)
	w := httptest.NewRecorder()
	kisiRouter(service).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("beklenen 200, gelen %d", w.Code)
	}
	z := zarfCoz(t, w.Body.Bytes())
	if z.Pagination == nil {
		t.Fatal("liste yanıtında pagination olmalı")
	}
	if z.Pagination.Total != 41 || z.Pagination.TotalPages != 3 || z.Pagination.Page != 2 {
		t.Errorf("pagination = %+v", z.Pagination)
	}
}

func TestKisiOlusturDogrulamaHatasi(t *testing.T) {
	service := &sahteKisiService{
		olusturFn: func(ctx context.Context, girdi kisi.Girdi, olusturanID string) (*model.Kisi, error) {
			return nil, model.NewValidationError(map[string]string{"ad": "Ad zorunludur."})
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/kisiler", strings.NewReader(`{"soyad":"Yılmaz"}`))
	w := httptest.NewRecorder()
	kisiRouter(service).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("beklenen 400, gelen %d", w.Code)
	}
	z := zarfCoz(t, w.Body.Bytes())
	if z.Error.Code != model.ErrCodeValidation {
		t.Errorf("kod = %s", z.Error.Code)
	}
	alanlar, ok := z.Error.Details["fieldErrors"].(map[string]any)
	if !ok {
		t.Fatalf("details.fieldErrors beklenir: %+v", z.Error.Details)
	}
	if _, ok := alanlar["ad"]; !ok {
		t.Errorf("eksik alan adı fieldErrors içinde olmalı: %v", alanlar)
	}
}

func TestKisiOlusturBozukGovde(t *testing.T) {
	cagirildi := false
	service := &sahteKisiService{
		olusturFn: func(ctx context.Context, girdi kisi.Girdi, olusturanID string) (*model.Kisi, error) {
			cagirildi = true
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/kisiler", strings.NewReader(`{bozuk`))
	w := httptest.NewRecorder()
	kisiRouter(service).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("beklenen 400, gelen %d", w.Code)
	}
	if cagirildi {
		t.Error("bozuk gövde servise ulaşmamalı")
	}
}

func TestKisiGetirBulunamadi(t *testing.T) {
	service := &sahteKisiService{
		getirFn: func(ctx context.Context, id string) (*model.Kisi, error) {
			return nil, model.NewNotFoundError("kisi", id)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/kisiler/yok", nil)
	w := httptest.NewRecorder()
	kisiRouter(service).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("beklenen 404, gelen %d", w.Code)
	}
}

func TestKisiSilBagimliKayitReddi(t *testing.T) {
	service := &sahteKisiService{
		silFn: func(ctx context.Context, id string) error {
			return model.NewDependentsError("kisi", model.IliskiSayimi{"telefonlar": 2})
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/kisiler/k1", nil)
	w := httptest.NewRecorder()
	kisiRouter(service).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("bağımlı kayıt silinmeye çalışılınca 400 beklenir, gelen %d", w.Code)
	}
	z := zarfCoz(t, w.Body.Bytes())
	if z.Error.Code != model.ErrCodeDependents {
		t.Errorf("kod = %s", z.Error.Code)
	}
}

func TestKisiTopluSilSonucu(t *testing.T) {
	var alinan []string
	service := &sahteKisiService{
		batchSilFn: func(ctx context.Context, ids []string) (model.BatchSonuc, error) {
			alinan = ids
			return model.BatchSonuc{Success: 3, Archived: 1, Deleted: 2}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/kisiler/toplu-sil",
		strings.NewReader(`{"idler":["k1","k2","k3"]}`))
	w := httptest.NewRecorder()
	kisiRouter(service).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("beklenen 200, gelen %d", w.Code)
	}
	if len(alinan) != 3 {
		t.Errorf("kimlikler servise iletilmeli: %v", alinan)
	}

	z := zarfCoz(t, w.Body.Bytes())
	var sonuc model.BatchSonuc
	if err := json.Unmarshal(z.Data, &sonuc); err != nil {
		t.Fatalf("sonuç çözülemedi: %v", err)
	}
	if sonuc.Success != 3 || sonuc.Archived != 1 || sonuc.Deleted != 2 {
		t.Errorf("sonuç = %+v", sonuc)
	}
}
