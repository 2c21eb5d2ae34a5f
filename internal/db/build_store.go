package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/zzzcalc/internal/model"
)

// BuildStore persists named builds as their exported JSON documents plus a
// little metadata for listing.
type BuildStore struct {
	db *DB
}

// NewBuildStore returns a store over an open database.
func NewBuildStore(db *DB) *BuildStore {
	return &BuildStore{db: db}
}

// BuildInfo is one row of the build listing.
type BuildInfo struct {
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveBuild inserts or replaces the build stored under name.
func (s *BuildStore) SaveBuild(ctx context.Context, name string, b *model.Build) error {
	doc, err := b.EncodeDocument()
	if err != nil {
		return err
	}

	p := s.db.dialect.Placeholder
	query := fmt.Sprintf(
		`INSERT INTO builds (name, mode, document, updated_at)
		 VALUES (%s, %s, %s, %s)
		 ON CONFLICT (name) DO UPDATE SET
		   mode = excluded.mode,
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		p(1), p(2), p(3), p(4),
	)
	if _, err := s.db.sql.ExecContext(ctx, query, name, string(b.Mode), string(doc), time.Now().UTC()); err != nil {
		return fmt.Errorf("saving build %q: %w", name, err)
	}
	return nil
}

// GetBuild loads the build stored under name. Returns nil, nil when no
// build with that name exists.
func (s *BuildStore) GetBuild(ctx context.Context, name string) (*model.Build, error) {
	query := fmt.Sprintf(`SELECT document FROM builds WHERE name = %s`, s.db.dialect.Placeholder(1))

	var doc string
	err := s.db.sql.QueryRowContext(ctx, query, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying build %q: %w", name, err)
	}

	b, err := model.DecodeDocument([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("decoding stored build %q: %w", name, err)
	}
	return b, nil
}

// ListBuilds returns metadata for every stored build, most recently
// updated first.
func (s *BuildStore) ListBuilds(ctx context.Context) ([]BuildInfo, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT name, mode, updated_at FROM builds ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	var out []BuildInfo
	for rows.Next() {
		var info BuildInfo
		if err := rows.Scan(&info.Name, &info.Mode, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning build row: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	return out, nil
}

// DeleteBuild removes the build stored under name. The bool reports
// whether a build was actually deleted.
func (s *BuildStore) DeleteBuild(ctx context.Context, name string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM builds WHERE name = %s`, s.db.dialect.Placeholder(1))

	res, err := s.db.sql.ExecContext(ctx, query, name)
	if err != nil {
		return false, fmt.Errorf("deleting build %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting build %q: %w", name, err)
	}
	return n > 0, nil
}
