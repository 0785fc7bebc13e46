package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zenban/internal/domain"
)

func TestFormatBoardList(t *testing.T) {
	out := FormatBoardList([]domain.Board{
		{ID: 1, Name: "Roadmap", Owner: "ada", CreatedAt: "2026-08-01T12:00:00Z"},
	})
	assert.Contains(t, out, "Roadmap")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "2026-08-01")
	assert.NotContains(t, out, "12:00:00")
}

func TestFormatBoardList_Empty(t *testing.T) {
	assert.Contains(t, FormatBoardList(nil), "No boards")
}

func TestFormatMemberList(t *testing.T) {
	out := FormatMemberList([]domain.Member{
		{ID: 1, User: domain.User{Username: "ada", Email: "ada@example.com"}, Role: domain.RoleOwner},
		{ID: 2, User: domain.User{Username: "bob", Email: "bob@example.com"}, Role: domain.RoleViewer},
	})
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "owner")
	assert.Contains(t, out, "viewer")
}

func TestTagChip(t *testing.T) {
	out := TagChip(domain.Tag{Name: "Urgent", Color: "#f97316"})
	assert.Contains(t, out, "Urgent")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a ver…", truncate("a very long name", 6))
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "2026-08-01", shortDate("2026-08-01T12:00:00Z"))
	assert.Equal(t, "bad", shortDate("bad"))
}
