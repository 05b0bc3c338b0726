package postgres

import (
	"context"

	"freelance-match/internal/database"
	dbpostgres "freelance-match/internal/database/postgres"
	"freelance-match/internal/infrastructure/kv"
)

// KVStore keeps store blobs in the kv_store table.
type KVStore struct {
	db database.DB
}

func NewKVStore(db database.DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	row := s.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key)
	if err := row.Scan(&value); err != nil {
		if dbpostgres.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	return err
}

var _ kv.Store = (*KVStore)(nil)
