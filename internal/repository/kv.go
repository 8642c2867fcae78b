package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// KVRepository is the key-value storage the application persists through.
type KVRepository interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

type kvRepository struct {
	db *sqlx.DB
}

func NewKVRepository(db *sqlx.DB) KVRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(key string) ([]byte, bool, error) {
	var value []byte
	query := `SELECT value FROM kv WHERE key = $1`

	err := r.db.Get(&value, query, key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return value, true, nil
}

func (r *kvRepository) Set(key string, value []byte) error {
	query := `INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, key, value, time.Now())
	return err
}
