package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"zenban/internal/domain"
)

// FormatBoardList renders boards as an aligned table for `board list`.
func FormatBoardList(boards []domain.Board) string {
	if len(boards) == 0 {
		return Dim("No boards.")
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("  %-5s %-30s %-16s %s", "ID", "NAME", "OWNER", "CREATED")))
	b.WriteString("\n")
	for _, board := range boards {
		b.WriteString(fmt.Sprintf("  %-5d %-30s %-16s %s\n",
			board.ID, truncate(board.Name, 30), truncate(board.Owner, 16), Dim(shortDate(board.CreatedAt))))
	}
	return b.String()
}

// FormatMemberList renders a board's membership table.
func FormatMemberList(members []domain.Member) string {
	if len(members) == 0 {
		return Dim("No members.")
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("  %-5s %-16s %-24s %s", "ID", "USERNAME", "EMAIL", "ROLE")))
	b.WriteString("\n")
	for _, m := range members {
		b.WriteString(fmt.Sprintf("  %-5d %-16s %-24s %s\n",
			m.ID, truncate(m.User.Username, 16), truncate(m.User.Email, 24), roleStyle(m.Role).Render(string(m.Role))))
	}
	return b.String()
}

// TagChip renders a tag as a colored chip.
func TagChip(tag domain.Tag) string {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(tag.Color)).
		Foreground(lipgloss.Color(domain.ContrastColor(tag.Color))).
		Padding(0, 1)
	return style.Render(tag.Name)
}

func roleStyle(role domain.Role) lipgloss.Style {
	switch role {
	case domain.RoleOwner:
		return StyleYellow
	case domain.RoleEditor:
		return StyleGreen
	default:
		return StyleDim
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

// shortDate trims an RFC3339 timestamp to its date part.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
