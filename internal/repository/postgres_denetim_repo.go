package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/altay-yazilim/bplani/internal/model"
)

// PostgresDenetimRepository DenetimRepository'nin PostgreSQL implementasyonu.
// Tablo append-only kullanılır; UPDATE veya DELETE sorgusu yoktur.
type PostgresDenetimRepository struct {
	db *sql.DB
}

func NewPostgresDenetimRepository(db *sql.DB) *PostgresDenetimRepository {
	return &PostgresDenetimRepository{db: db}
}

func (r *PostgresDenetimRepository) Append(ctx context.Context, kayit *model.DenetimKaydi) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO denetim_kayitlari
		 (id, entity_tipi, entity_id, eylem, onceki_durum, sonraki_durum, etiket, personel_id, personel_ad)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING zaman`,
		kayit.ID, kayit.EntityTipi, nullString(kayit.EntityID), kayit.Eylem,
		nullBytes(kayit.OncekiDurum), nullBytes(kayit.SonrakiDurum),
		nullString(kayit.Etiket), nullString(kayit.PersonelID), nullString(kayit.PersonelAd),
	).Scan(&kayit.Zaman)
	if err != nil {
		return fmt.Errorf("denetim kaydı ekleme: %w", err)
	}
	return nil
}

func (r *PostgresDenetimRepository) ListByEntity(ctx context.Context, entityTipi, entityID string, limit int) ([]*model.DenetimKaydi, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entity_tipi, entity_id, eylem, onceki_durum, sonraki_durum, etiket, personel_id, personel_ad, zaman
		 FROM denetim_kayitlari
		 WHERE entity_tipi = $1 AND entity_id = $2
		 ORDER BY zaman DESC
		 LIMIT $3`,
		entityTipi, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("denetim listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.DenetimKaydi
	for rows.Next() {
		var k model.DenetimKaydi
		var entityID, etiket, personelID, personelAd sql.NullString
		if err := rows.Scan(&k.ID, &k.EntityTipi, &entityID, &k.Eylem, &k.OncekiDurum, &k.SonrakiDurum,
			&etiket, &personelID, &personelAd, &k.Zaman); err != nil {
			return nil, fmt.Errorf("denetim satırı: %w", err)
		}
		k.EntityID = stringFromNull(entityID)
		k.Etiket = stringFromNull(etiket)
		k.PersonelID = stringFromNull(personelID)
		k.PersonelAd = stringFromNull(personelAd)
		sonuc = append(sonuc, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("denetim listesi: %w", err)
	}
	return sonuc, nil
}

// nullBytes boş JSON snapshot'ı NULL olarak saklar.
func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
