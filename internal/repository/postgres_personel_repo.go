package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altay-yazilim/bplani/internal/model"
)

var personelSortColumns = map[string]string{
	"kullaniciAdi": "kullanici_adi",
	"adSoyad":      "ad_soyad",
	"createdAt":    "created_at",
}

// PostgresPersonelRepository PersonelRepository'nin PostgreSQL implementasyonu.
type PostgresPersonelRepository struct {
	db *sql.DB
}

func NewPostgresPersonelRepository(db *sql.DB) *PostgresPersonelRepository {
	return &PostgresPersonelRepository{db: db}
}

const personelSelect = `SELECT id, kullanici_adi, ad_soyad, rol, parola_ozeti, aktif, created_at, updated_at FROM personeller`

func scanPersonel(row interface{ Scan(...any) error }) (*model.Personel, error) {
	var p model.Personel
	err := row.Scan(&p.ID, &p.KullaniciAdi, &p.AdSoyad, &p.Rol, &p.ParolaOzeti, &p.Aktif, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPersonelRepository) FindByID(ctx context.Context, id string) (*model.Personel, error) {
	row := r.db.QueryRowContext(ctx, personelSelect+` WHERE id = $1`, id)
	p, err := scanPersonel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("personel sorgusu: %w", err)
	}
	return p, nil
}

func (r *PostgresPersonelRepository) FindByKullaniciAdi(ctx context.Context, kullaniciAdi string) (*model.Personel, error) {
	row := r.db.QueryRowContext(ctx, personelSelect+` WHERE kullanici_adi = $1`, kullaniciAdi)
	p, err := scanPersonel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("personel sorgusu: %w", err)
	}
	return p, nil
}

func (r *PostgresPersonelRepository) List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Personel, int, error) {
	opts.Normalize()

	where := ""
	args := []any{}
	if opts.Search != "" {
		where = ` WHERE (kullanici_adi ILIKE $1 OR ad_soyad ILIKE $1)`
		args = append(args, "%"+opts.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM personeller`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("personel sayımı: %w", err)
	}

	col := sortColumn(opts.SortBy, personelSortColumns, "kullanici_adi")
	query := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		personelSelect, where, col, sortDirection(opts.SortOrder), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("personel listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.Personel
	for rows.Next() {
		p, err := scanPersonel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("personel satırı: %w", err)
		}
		sonuc = append(sonuc, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("personel listesi: %w", err)
	}
	return sonuc, total, nil
}

func (r *PostgresPersonelRepository) Create(ctx context.Context, p *model.Personel) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO personeller (id, kullanici_adi, ad_soyad, rol, parola_ozeti, aktif)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		p.ID, p.KullaniciAdi, p.AdSoyad, p.Rol, p.ParolaOzeti, p.Aktif,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("personel oluşturma: %w", err)
	}
	return nil
}

func (r *PostgresPersonelRepository) Update(ctx context.Context, p *model.Personel) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE personeller
		 SET ad_soyad = $2, rol = $3, parola_ozeti = $4, aktif = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		p.ID, p.AdSoyad, p.Rol, p.ParolaOzeti, p.Aktif,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("personel güncelleme: %w", err)
	}
	return nil
}

func (r *PostgresPersonelRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM personeller WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("personel silme: %w", err)
	}
	return nil
}

func (r *PostgresPersonelRepository) TakipSayisi(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM takipler WHERE personel_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("takip sayımı: %w", err)
	}
	return n, nil
}
