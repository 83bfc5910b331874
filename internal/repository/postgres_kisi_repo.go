package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altay-yazilim/bplani/internal/model"
)

var kisiSortColumns = map[string]string{
	"ad":        "ad",
	"soyad":     "soyad",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// PostgresKisiRepository KisiRepository'nin PostgreSQL implementasyonu.
type PostgresKisiRepository struct {
	db *sql.DB
}

func NewPostgresKisiRepository(db *sql.DB) *PostgresKisiRepository {
	return &PostgresKisiRepository{db: db}
}

const kisiSelect = `SELECT id, ad, soyad, kimlik_no, notlar, arsivlendi, olusturan_id, created_at, updated_at FROM kisiler`

func scanKisi(row interface{ Scan(...any) error }) (*model.Kisi, error) {
	var k model.Kisi
	var kimlikNo, notlar, olusturanID sql.NullString
	err := row.Scan(&k.ID, &k.Ad, &k.Soyad, &kimlikNo, &notlar, &k.Arsivlendi, &olusturanID, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		return nil, err
	}
	k.KimlikNo = stringFromNull(kimlikNo)
	k.Notlar = stringFromNull(notlar)
	k.OlusturanID = stringFromNull(olusturanID)
	return &k, nil
}

func (r *PostgresKisiRepository) FindByID(ctx context.Context, id string) (*model.Kisi, error) {
	row := r.db.QueryRowContext(ctx, kisiSelect+` WHERE id = $1`, id)
	k, err := scanKisi(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kişi sorgusu: %w", err)
	}
	return k, nil
}

func (r *PostgresKisiRepository) List(ctx context.Context, opts model.ListeSecenekleri) ([]*model.Kisi, int, error) {
	opts.Normalize()

	where := ` WHERE arsivlendi = FALSE`
	args := []any{}
	if opts.Search != "" {
		where += ` AND (ad ILIKE $1 OR soyad ILIKE $1 OR kimlik_no ILIKE $1)`
		args = append(args, "%"+opts.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kisiler`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("kişi sayımı: %w", err)
	}

	col := sortColumn(opts.SortBy, kisiSortColumns, "created_at")
	query := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		kisiSelect, where, col, sortDirection(opts.SortOrder), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("kişi listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.Kisi
	for rows.Next() {
		k, err := scanKisi(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("kişi satırı: %w", err)
		}
		sonuc = append(sonuc, k)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("kişi listesi: %w", err)
	}
	return sonuc, total, nil
}

func (r *PostgresKisiRepository) Create(ctx context.Context, k *model.Kisi) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO kisiler (id, ad, soyad, kimlik_no, notlar, olusturan_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		k.ID, k.Ad, k.Soyad, nullString(k.KimlikNo), nullString(k.Notlar), nullString(k.OlusturanID),
	).Scan(&k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		return fmt.Errorf("kişi oluşturma: %w", err)
	}
	return nil
}

func (r *PostgresKisiRepository) Update(ctx context.Context, k *model.Kisi) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE kisiler
		 SET ad = $2, soyad = $3, kimlik_no = $4, notlar = $5, arsivlendi = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		k.ID, k.Ad, k.Soyad, nullString(k.KimlikNo), nullString(k.Notlar), k.Arsivlendi,
	).Scan(&k.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("kişi güncelleme: %w", err)
	}
	return nil
}

func (r *PostgresKisiRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kisiler WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("kişi silme: %w", err)
	}
	return nil
}

// iliskiSayimSorgusu tek sorguda dört bağımlı tablonun sayımını alır.
const iliskiSayimSorgusu = `SELECT
	(SELECT COUNT(*) FROM telefonlar WHERE kisi_id = $1),
	(SELECT COUNT(*) FROM araclar   WHERE kisi_id = $1),
	(SELECT COUNT(*) FROM adresler  WHERE kisi_id = $1),
	(SELECT COUNT(*) FROM takipler  WHERE kisi_id = $1)`

func (r *PostgresKisiRepository) IliskiSayilari(ctx context.Context, id string) (model.IliskiSayimi, error) {
	var tel, arac, adres, takip int
	err := r.db.QueryRowContext(ctx, iliskiSayimSorgusu, id).Scan(&tel, &arac, &adres, &takip)
	if err != nil {
		return nil, fmt.Errorf("ilişki sayımı: %w", err)
	}
	return model.IliskiSayimi{
		"telefonlar": tel,
		"araclar":    arac,
		"adresler":   adres,
		"takipler":   takip,
	}, nil
}

// BatchSil arşivle/sil bölüntüsünü tek transaction içinde uygular.
// Her kimlik için bağımlı ilişkiler sayılır; en az bir ilişkisi olan
// kayıt arşivlenir, hiç ilişkisi olmayan kalıcı silinir. Transaction
// herhangi bir adımda başarısız olursa tamamı geri alınır ve hiçbir
// kayıt kısmen işlenmiş kalmaz.
func (r *PostgresKisiRepository) BatchSil(ctx context.Context, ids []string) (model.BatchSonuc, error) {
	var sonuc model.BatchSonuc
	if len(ids) == 0 {
		return sonuc, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return sonuc, fmt.Errorf("batch silme transaction: %w", err)
	}
	defer tx.Rollback()

	var arsivlenecek, silinecek []string
	for _, id := range ids {
		var tel, arac, adres, takip int
		if err := tx.QueryRowContext(ctx, iliskiSayimSorgusu, id).Scan(&tel, &arac, &adres, &takip); err != nil {
			return model.BatchSonuc{}, fmt.Errorf("batch ilişki sayımı (%s): %w", id, err)
		}
		if tel+arac+adres+takip > 0 {
			arsivlenecek = append(arsivlenecek, id)
		} else {
			silinecek = append(silinecek, id)
		}
	}

	for _, id := range arsivlenecek {
		res, err := tx.ExecContext(ctx,
			`UPDATE kisiler SET arsivlendi = TRUE, updated_at = now() WHERE id = $1`, id)
		if err != nil {
			return model.BatchSonuc{}, fmt.Errorf("batch arşivleme (%s): %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return model.BatchSonuc{}, fmt.Errorf("batch arşivleme (%s): %w", id, err)
		}
		if n > 0 {
			sonuc.Archived++
		} else {
			sonuc.Failed++
		}
	}
	for _, id := range silinecek {
		res, err := tx.ExecContext(ctx, `DELETE FROM kisiler WHERE id = $1`, id)
		if err != nil {
			return model.BatchSonuc{}, fmt.Errorf("batch silme (%s): %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return model.BatchSonuc{}, fmt.Errorf("batch silme (%s): %w", id, err)
		}
		if n > 0 {
			sonuc.Deleted++
		} else {
			sonuc.Failed++
		}
	}

	if err := tx.Commit(); err != nil {
		return model.BatchSonuc{}, fmt.Errorf("batch silme commit: %w", err)
	}
	sonuc.Success = sonuc.Archived + sonuc.Deleted
	return sonuc, nil
}

func (r *PostgresKisiRepository) Telefonlar(ctx context.Context, kisiID string) ([]*model.Telefon, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kisi_id, numara, etiket, created_at FROM telefonlar WHERE kisi_id = $1 ORDER BY created_at`, kisiID)
	if err != nil {
		return nil, fmt.Errorf("telefon listesi: %w", err)
	}
	defer rows.Close()

	var sonuc []*model.Telefon
	for rows.Next() {
		var t model.Telefon
		var etiket sql.NullString
		if err := rows.Scan(&t.ID, &t.KisiID, &t.Numara, &etiket, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("telefon satırı: %w", err)
		}
		t.Etiket = stringFromNull(etiket)
		sonuc = append(sonuc, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("telefon listesi: %w", err)
	}
	return sonuc, nil
}

func (r *PostgresKisiRepository) TelefonEkle(ctx context.Context, t *model.Telefon) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO telefonlar (id, kisi_id, numara, etiket) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		t.ID, t.KisiID, t.Numara, nullString(t.Etiket),
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("telefon ekleme: %w", err)
	}
	return nil
}

func (r *PostgresKisiRepository) TelefonSil(ctx context.Context, telefonID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM telefonlar WHERE id = $1`, telefonID)
	if err != nil {
		return false, fmt.Errorf("telefon silme: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("telefon silme: %w", err)
	}
	return n > 0, nil
}
