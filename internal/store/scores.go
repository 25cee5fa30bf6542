package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// BestScore returns the best colour-game score recorded for player, or 0.
func (s *Store) BestScore(ctx context.Context, player string) (int, error) {
	var best int
	err := s.db.QueryRowContext(ctx,
		`SELECT best FROM color_scores WHERE player = ?`, player,
	).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("store: best score %q: %w", player, err)
	}
	return best, nil
}

// RecordScore stores score for player if it beats the previous best and
// returns the best score after the update.
func (s *Store) RecordScore(ctx context.Context, player string, score int) (int, error) {
	var best int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO color_scores (player, best, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(player) DO UPDATE SET
			best = MAX(best, excluded.best),
			updated_at = excluded.updated_at
		RETURNING best`,
		player, score, s.now().Unix(),
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("store: record score %q: %w", player, err)
	}
	return best, nil
}
