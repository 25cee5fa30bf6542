package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"termfolio/internal/skin"
)

// CachedSkin returns the skin source last saved for name if it is younger
// than maxAge. Names are matched case-insensitively.
func (s *Store) CachedSkin(ctx context.Context, name string, maxAge time.Duration) (skin.Source, bool, error) {
	var (
		url, variant string
		fetchedAt    int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT url, variant, fetched_at FROM skin_cache WHERE name = ?`,
		normalize(name),
	).Scan(&url, &variant, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return skin.Source{}, false, nil
	}
	if err != nil {
		return skin.Source{}, false, fmt.Errorf("store: cached skin %q: %w", name, err)
	}

	if s.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return skin.Source{}, false, nil
	}
	return skin.Source{URL: url, Variant: skin.ParseVariant(variant)}, true, nil
}

// SaveSkin records the resolved skin for name, replacing any earlier entry.
func (s *Store) SaveSkin(ctx context.Context, name, uuid string, src skin.Source) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skin_cache (name, uuid, url, variant, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			uuid = excluded.uuid,
			url = excluded.url,
			variant = excluded.variant,
			fetched_at = excluded.fetched_at`,
		normalize(name), uuid, src.URL, string(src.Variant), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store: save skin %q: %w", name, err)
	}
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
