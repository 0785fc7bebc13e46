package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenban/internal/db"
	"zenban/internal/domain"
)

func newTestCache(t *testing.T) *BoardCache {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewBoardCache(database)
}

func TestBoardCache_EmptyList(t *testing.T) {
	c := newTestCache(t)

	boards, cachedAt, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, boards)
	assert.True(t, cachedAt.IsZero())
}

func TestBoardCache_PutAndList(t *testing.T) {
	c := newTestCache(t)

	in := []domain.Board{
		{ID: 2, Name: "Roadmap", Owner: "ada", CreatedAt: "2026-08-01T12:00:00Z"},
		{ID: 1, Name: "Chores", Owner: "ada", CreatedAt: "2026-07-15T09:30:00Z"},
	}
	require.NoError(t, c.Put(in))

	boards, cachedAt, err := c.List()
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "Chores", boards[0].Name)
	assert.Equal(t, "Roadmap", boards[1].Name)
	assert.Equal(t, "ada", boards[1].Owner)
	assert.False(t, cachedAt.IsZero())
}

func TestBoardCache_PutReplaces(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Put([]domain.Board{{ID: 1, Name: "Old"}}))
	require.NoError(t, c.Put([]domain.Board{{ID: 2, Name: "New"}}))

	boards, _, err := c.List()
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "New", boards[0].Name)
}

func TestBoardCache_PutEmptyClears(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Put([]domain.Board{{ID: 1, Name: "Gone"}}))
	require.NoError(t, c.Put(nil))

	boards, _, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, boards)
}
