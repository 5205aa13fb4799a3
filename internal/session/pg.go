package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps credentials in Postgres so web sessions survive restarts
// and are shared between instances.
type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

// EnsureSchema creates the credentials table if it is missing.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS client_credentials (
			origin     TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (origin, key)
		)
	`)
	if err != nil {
		return fmt.Errorf("create client_credentials: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, origin, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v string
	err := s.db.QueryRow(ctx, `
		SELECT value FROM client_credentials WHERE origin=$1 AND key=$2
	`, origin, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select credential: %w", err)
	}
	return v, true, nil
}

func (s *PGStore) Set(ctx context.Context, origin, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		INSERT INTO client_credentials (origin, key, value, updated_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (origin, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`, origin, key, value)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, origin, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.db.Exec(ctx, `
		DELETE FROM client_credentials WHERE origin=$1 AND key=$2
	`, origin, key); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
