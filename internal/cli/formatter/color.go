package formatter

import "github.com/charmbracelet/lipgloss"

// Cool-toned palette, matching the board's column accents.
var (
	ColorCyan   = lipgloss.Color("#7fd1d1")
	ColorBlue   = lipgloss.Color("#83a5d8")
	ColorIndigo = lipgloss.Color("#8a8fd8")
	ColorViolet = lipgloss.Color("#ad8fd8")
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleIndigo = lipgloss.NewStyle().Foreground(ColorIndigo)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
)

// columnAccents cycles across board columns.
var columnAccents = []lipgloss.Color{
	ColorCyan, ColorBlue, ColorIndigo, ColorViolet, ColorGreen, ColorYellow,
}

// ColumnAccent returns the accent color for the i-th column.
func ColumnAccent(i int) lipgloss.Color {
	return columnAccents[i%len(columnAccents)]
}

// Dim renders s in the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// Bold renders s in the bold style.
func Bold(s string) string { return StyleBold.Render(s) }
