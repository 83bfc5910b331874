package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresTercihRepository TercihRepository'nin PostgreSQL implementasyonu.
type PostgresTercihRepository struct {
	db *sql.DB
}

func NewPostgresTercihRepository(db *sql.DB) *PostgresTercihRepository {
	return &PostgresTercihRepository{db: db}
}

func (r *PostgresTercihRepository) Get(ctx context.Context, personelID, anahtar string) ([]byte, error) {
	var deger []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT deger FROM kullanici_tercihleri WHERE personel_id = $1 AND anahtar = $2`,
		personelID, anahtar,
	).Scan(&deger)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tercih sorgusu: %w", err)
	}
	return deger, nil
}

func (r *PostgresTercihRepository) Set(ctx context.Context, personelID, anahtar string, deger []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kullanici_tercihleri (personel_id, anahtar, deger, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (personel_id, anahtar) DO UPDATE SET deger = EXCLUDED.deger, updated_at = now()`,
		personelID, anahtar, deger)
	if err != nil {
		return fmt.Errorf("tercih kaydetme: %w", err)
	}
	return nil
}
