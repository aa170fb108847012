// Package store persists listing records. Each record keeps its raw,
// schema-less backend payload in a JSONB column untouched, alongside the
// resolved status and deal type so list queries never need to reparse.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned when an object id does not exist.
var ErrNotFound = errors.New("object not found")

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS objects (
            id          TEXT PRIMARY KEY,
            owner_id    TEXT,
            raw         JSONB NOT NULL DEFAULT '{}'::jsonb,
            status      TEXT NOT NULL DEFAULT 'active',
            deal_type   TEXT NOT NULL DEFAULT 'rent',
            created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_objects_status ON objects(status);`,
		`CREATE INDEX IF NOT EXISTS idx_objects_owner ON objects(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_objects_updated ON objects(updated_at DESC);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// ObjectRecord is one stored listing.
type ObjectRecord struct {
	ID        string
	OwnerID   sql.NullString
	Raw       []byte
	Status    string
	DealType  string
	UpdatedAt time.Time
}

func (s *Store) List(ctx context.Context, limit int) ([]ObjectRecord, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, owner_id, raw, status, deal_type, updated_at
        FROM objects
        ORDER BY updated_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ObjectRecord
	for rows.Next() {
		var rec ObjectRecord
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Raw, &rec.Status, &rec.DealType, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (ObjectRecord, error) {
	var rec ObjectRecord
	err := s.DB.QueryRowContext(ctx, `
        SELECT id, owner_id, raw, status, deal_type, updated_at
        FROM objects WHERE id = $1`, id).
		Scan(&rec.ID, &rec.OwnerID, &rec.Raw, &rec.Status, &rec.DealType, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

func (s *Store) Create(ctx context.Context, id, ownerID string, raw []byte, status, dealType string) error {
	if !json.Valid(raw) {
		return errors.New("raw payload is not valid JSON")
	}
	owner := sql.NullString{String: ownerID, Valid: ownerID != ""}
	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO objects (id, owner_id, raw, status, deal_type)
        VALUES ($1, $2, $3, $4, $5)`,
		id, owner, string(raw), status, dealType)
	if err != nil {
		return fmt.Errorf("insert object %s: %w", id, err)
	}
	return nil
}

// ApplyPatch merges a patch object into the stored raw payload and returns
// the merged result. Keys patched to null stay present with a null value:
// the record's schema is closed, values change but keys do not disappear.
func (s *Store) ApplyPatch(ctx context.Context, id string, patch []byte) ([]byte, error) {
	var merged []byte
	err := s.DB.QueryRowContext(ctx, `
        UPDATE objects
        SET raw = raw || $2::jsonb, updated_at = now()
        WHERE id = $1
        RETURNING raw`, id, string(patch)).Scan(&merged)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch object %s: %w", id, err)
	}
	return merged, nil
}

// SetStatus records the resolved status and deal type for list queries and
// for syndication overrides.
func (s *Store) SetStatus(ctx context.Context, id, status, dealType string) error {
	res, err := s.DB.ExecContext(ctx, `
        UPDATE objects SET status = $2, deal_type = $3, updated_at = now()
        WHERE id = $1`, id, status, dealType)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM objects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
