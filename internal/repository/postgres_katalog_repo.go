package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altay-yazilim/bplani/internal/model"
)

// PostgresKatalogRepository KatalogRepository'nin PostgreSQL implementasyonu.
// Marka ve model listeleri küçük taksonomilerdir, sayfalama uygulanmaz.
type PostgresKatalogRepository struct {
	db *sql.DB
}

func NewPostgresKatalogRepository(db *sql.DB) *PostgresKatalogRepository {
	return &PostgresKatalogRepository{db: db}
}

func (r *PostgresKatalogRepository) MarkaFindByID(ctx context.Context, id string) (*model.Marka, error) {
	var m model.Marka
	err := r.db.QueryRowContext(ctx,
		`SELECT id, ad, created_at FROM markalar WHERE id = $1`, id,
	).Scan(&m.ID, &m.Ad, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("marka sorgusu: %w", err)
	}
	return &m, nil
}

func (r *PostgresKatalogRepository) MarkaList(ctx context.Context) ([]*model.Marka, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, ad, created_at FROM markalar ORDER BY ad`)
	if err != nil {
		return nil, fmt.Errorf("marka listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.Marka
	for rows.Next() {
		var m model.Marka
		if err := rows.Scan(&m.ID, &m.Ad, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("marka satırı: %w", err)
		}
		sonuc = append(sonuc, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marka listesi: %w", err)
	}
	return sonuc, nil
}

func (r *PostgresKatalogRepository) MarkaCreate(ctx context.Context, m *model.Marka) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO markalar (id, ad) VALUES ($1, $2) RETURNING created_at`,
		m.ID, m.Ad,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("marka oluşturma: %w", err)
	}
	return nil
}

func (r *PostgresKatalogRepository) MarkaDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM markalar WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marka silme: %w", err)
	}
	return nil
}

func (r *PostgresKatalogRepository) ModelSayisi(ctx context.Context, markaID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM arac_modelleri WHERE marka_id = $1`, markaID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("model sayımı: %w", err)
	}
	return n, nil
}

func (r *PostgresKatalogRepository) ModelList(ctx context.Context, markaID string) ([]*model.AracModeli, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, marka_id, ad, created_at FROM arac_modelleri WHERE marka_id = $1 ORDER BY ad`, markaID)
	if err != nil {
		return nil, fmt.Errorf("model listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.AracModeli
	for rows.Next() {
		var m model.AracModeli
		if err := rows.Scan(&m.ID, &m.MarkaID, &m.Ad, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("model satırı: %w", err)
		}
		sonuc = append(sonuc, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("model listesi: %w", err)
	}
	return sonuc, nil
}

func (r *PostgresKatalogRepository) ModelCreate(ctx context.Context, m *model.AracModeli) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO arac_modelleri (id, marka_id, ad) VALUES ($1, $2, $3) RETURNING created_at`,
		m.ID, m.MarkaID, m.Ad,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("model oluşturma: %w", err)
	}
	return nil
}

func (r *PostgresKatalogRepository) ModelDelete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM arac_modelleri WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("model silme: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("model silme: %w", err)
	}
	return n > 0, nil
}
