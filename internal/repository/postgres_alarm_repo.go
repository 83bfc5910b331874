package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altay-yazilim/bplani/internal/model"
)

var alarmSortColumns = map[string]string{
	"baslik":     "baslik",
	"tetikZamani": "tetik_zamani",
	"createdAt":  "created_at",
}

// PostgresAlarmRepository AlarmRepository'nin PostgreSQL implementasyonu.
type PostgresAlarmRepository struct {
	db *sql.DB
}

func NewPostgresAlarmRepository(db *sql.DB) *PostgresAlarmRepository {
	return &PostgresAlarmRepository{db: db}
}

const alarmSelect = `SELECT id, kisi_id, baslik, aciklama, tetik_zamani, webhook_url, durum,
	ardisik_hata, hata_mesaji, sonraki_deneme, olusturan_id, created_at, updated_at FROM alarmlar`

func scanAlarm(row interface{ Scan(...any) error }) (*model.Alarm, error) {
	var a model.Alarm
	var kisiID, aciklama, webhook, hataMesaji, olusturanID sql.NullString
	var sonraki sql.NullTime
	err := row.Scan(&a.ID, &kisiID, &a.Baslik, &aciklama, &a.TetikZamani, &webhook, &a.Durum,
		&a.ArdisikHata, &hataMesaji, &sonraki, &olusturanID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.KisiID = stringPtrFromNull(kisiID)
	a.Aciklama = stringFromNull(aciklama)
	a.WebhookURL = stringFromNull(webhook)
	a.HataMesaji = stringFromNull(hataMesaji)
	a.SonrakiDeneme = timePtrFromNull(sonraki)
	a.OlusturanID = stringFromNull(olusturanID)
	return &a, nil
}

func (r *PostgresAlarmRepository) FindByID(ctx context.Context, id string) (*model.Alarm, error) {
	row := r.db.QueryRowContext(ctx, alarmSelect+` WHERE id = $1`, id)
	a, err := scanAlarm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("alarm sorgusu: %w", err)
	}
	return a, nil
}

func (r *PostgresAlarmRepository) List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Alarm, int, error) {
	opts.Normalize()

	where := ""
	args := []any{}
	if opts.Search != "" {
		where = ` WHERE (baslik ILIKE $1 OR aciklama ILIKE $1)`
		args = append(args, "%"+opts.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alarmlar`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("alarm sayımı: %w", err)
	}

	col := sortColumn(opts.SortBy, alarmSortColumns, "tetik_zamani")
	query := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		alarmSelect, where, col, sortDirection(opts.SortOrder), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("alarm listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("alarm satırı: %w", err)
		}
		sonuc = append(sonuc, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("alarm listesi: %w", err)
	}
	return sonuc, total, nil
}

func (r *PostgresAlarmRepository) Create(ctx context.Context, a *model.Alarm) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO alarmlar (id, kisi_id, baslik, aciklama, tetik_zamani, webhook_url, durum, sonraki_deneme, olusturan_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at`,
		a.ID, nullStringPtr(a.KisiID), a.Baslik, nullString(a.Aciklama), a.TetikZamani,
		nullString(a.WebhookURL), a.Durum, nullTimePtr(a.SonrakiDeneme), nullString(a.OlusturanID),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("alarm oluşturma: %w", err)
	}
	return nil
}

func (r *PostgresAlarmRepository) Update(ctx context.Context, a *model.Alarm) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE alarmlar
		 SET baslik = $2, aciklama = $3, tetik_zamani = $4, webhook_url = $5, durum = $6,
		     ardisik_hata = $7, hata_mesaji = $8, sonraki_deneme = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		a.ID, a.Baslik, nullString(a.Aciklama), a.TetikZamani, nullString(a.WebhookURL), a.Durum,
		a.ArdisikHata, nullString(a.HataMesaji), nullTimePtr(a.SonrakiDeneme),
	).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("alarm güncelleme: %w", err)
	}
	return nil
}

func (r *PostgresAlarmRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM alarmlar WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("alarm silme: %w", err)
	}
	return nil
}

// ListVadesiGelen tetik zamanı geçmiş ve deneme sırası gelmiş aktif
// alarmları sahiplenerek döndürür. SKIP LOCKED ile seçilen satırların
// sonraki_deneme alanı aynı transaction'da kısa bir kira süresi kadar
// ileri alınır; birden fazla worker süreci aynı alarmı işlemez.
func (r *PostgresAlarmRepository) ListVadesiGelen(ctx context.Context, limit int) ([]*model.Alarm, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("alarm sahiplenme transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		alarmSelect+` WHERE durum = $1
		 AND tetik_zamani <= now()
		 AND (sonraki_deneme IS NULL OR sonraki_deneme <= now())
		 ORDER BY tetik_zamani
		 LIMIT $2
		 FOR UPDATE SKIP LOCKED`,
		model.AlarmAktif, limit)
	if err != nil {
		return nil, fmt.Errorf("vadesi gelen alarmlar: %w", err)
	}

	var sonuc []*model.Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("alarm satırı: %w", err)
		}
		sonuc = append(sonuc, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("vadesi gelen alarmlar: %w", err)
	}
	rows.Close()

	for _, a := range sonuc {
		if _, err := tx.ExecContext(ctx,
			`UPDATE alarmlar SET sonraki_deneme = now() + interval '2 minutes' WHERE id = $1`, a.ID); err != nil {
			return nil, fmt.Errorf("alarm sahiplenme (%s): %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("alarm sahiplenme commit: %w", err)
	}
	return sonuc, nil
}
