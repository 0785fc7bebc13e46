// Package cache persists the last-seen board list so `board list` can
// answer something useful when the API is unreachable. The cache is a
// convenience mirror, never authoritative.
package cache

import (
	"database/sql"
	"fmt"
	"time"

	"zenban/internal/domain"
)

// BoardCache stores the most recent board listing.
type BoardCache struct {
	db *sql.DB
}

// NewBoardCache creates a BoardCache backed by the given database.
func NewBoardCache(db *sql.DB) *BoardCache {
	return &BoardCache{db: db}
}

// Put replaces the cached listing with the given boards.
func (c *BoardCache) Put(boards []domain.Board) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.Exec(`DELETE FROM board_cache`); err != nil {
		return fmt.Errorf("clearing board cache: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, b := range boards {
		_, err := tx.Exec(
			`INSERT INTO board_cache (id, name, owner, created_at, cached_at) VALUES (?, ?, ?, ?, ?)`,
			b.ID, b.Name, b.Owner, b.CreatedAt, now,
		)
		if err != nil {
			return fmt.Errorf("caching board %d: %w", b.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing board cache: %w", err)
	}
	committed = true
	return nil
}

// List returns the cached boards and when they were cached. An empty
// cache returns no boards and a zero time.
func (c *BoardCache) List() ([]domain.Board, time.Time, error) {
	rows, err := c.db.Query(`SELECT id, name, owner, created_at, cached_at FROM board_cache ORDER BY id`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("listing cached boards: %w", err)
	}
	defer rows.Close()

	var boards []domain.Board
	var cachedAt time.Time
	for rows.Next() {
		var b domain.Board
		var ts string
		if err := rows.Scan(&b.ID, &b.Name, &b.Owner, &b.CreatedAt, &ts); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning cached board: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			cachedAt = t
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterating cached boards: %w", err)
	}
	return boards, cachedAt, nil
}
