package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open PostgreSQL bağlantısını açar.
// sql.Open bağlantıyı denemez; gerçek doğrulama için db.Ping() kullanın.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("veritabanı açılamadı: %w", err)
	}
	return db, nil
}
