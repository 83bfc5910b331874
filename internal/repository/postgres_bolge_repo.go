package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altay-yazilim/bplani/internal/model"
)

var bolgeSortColumns = map[string]string{
	"ad":        "ad",
	"createdAt": "created_at",
}

// PostgresBolgeRepository BolgeRepository'nin PostgreSQL implementasyonu.
type PostgresBolgeRepository struct {
	db *sql.DB
}

func NewPostgresBolgeRepository(db *sql.DB) *PostgresBolgeRepository {
	return &PostgresBolgeRepository{db: db}
}

const bolgeSelect = `SELECT id, ad, ust_bolge_id, created_at, updated_at FROM bolgeler`

func scanBolge(row interface{ Scan(...any) error }) (*model.Bolge, error) {
	var b model.Bolge
	var ust sql.NullString
	if err := row.Scan(&b.ID, &b.Ad, &ust, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.UstBolgeID = stringPtrFromNull(ust)
	return &b, nil
}

func (r *PostgresBolgeRepository) FindByID(ctx context.Context, id string) (*model.Bolge, error) {
	row := r.db.QueryRowContext(ctx, bolgeSelect+` WHERE id = $1`, id)
	b, err := scanBolge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bölge sorgusu: %w", err)
	}
	return b, nil
}

func (r *PostgresBolgeRepository) List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Bolge, int, error) {
	opts.Normalize()

	where := ""
	args := []any{}
	if opts.Search != "" {
		where = ` WHERE ad ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bolgeler`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("bölge sayımı: %w", err)
	}

	col := sortColumn(opts.SortBy, bolgeSortColumns, "ad")
	query := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		bolgeSelect, where, col, sortDirection(opts.SortOrder), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("bölge listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.Bolge
	for rows.Next() {
		b, err := scanBolge(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("bölge satırı: %w", err)
		}
		sonuc = append(sonuc, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("bölge listesi: %w", err)
	}
	return sonuc, total, nil
}

func (r *PostgresBolgeRepository) Create(ctx context.Context, b *model.Bolge) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO bolgeler (id, ad, ust_bolge_id) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		b.ID, b.Ad, nullStringPtr(b.UstBolgeID),
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("bölge oluşturma: %w", err)
	}
	return nil
}

func (r *PostgresBolgeRepository) Update(ctx context.Context, b *model.Bolge) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE bolgeler SET ad = $2, ust_bolge_id = $3, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		b.ID, b.Ad, nullStringPtr(b.UstBolgeID),
	).Scan(&b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("bölge güncelleme: %w", err)
	}
	return nil
}

func (r *PostgresBolgeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bolgeler WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bölge silme: %w", err)
	}
	return nil
}

func (r *PostgresBolgeRepository) AltBolgeSayisi(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bolgeler WHERE ust_bolge_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("alt bölge sayımı: %w", err)
	}
	return n, nil
}
