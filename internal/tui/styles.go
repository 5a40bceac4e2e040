package tui

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Text colors
	TextNormal   lipgloss.Color
	TextSelected lipgloss.Color
	TextOnBar    lipgloss.Color

	// Timeline
	AxisLine  lipgloss.Color
	Highlight lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TextNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TextSelected: lipgloss.Color("#FFEAA7"), // Yellow
	TextOnBar:    lipgloss.Color("#1E272E"), // Near black

	AxisLine:  lipgloss.Color("#636E72"),
	Highlight: lipgloss.Color("#FFEAA7"),
}

// categoryPalette holds the bar colors assigned to task categories.
var categoryPalette = []lipgloss.Color{
	"#74B9FF", // Light blue
	"#55EFC4", // Mint
	"#FAB1A0", // Peach
	"#A29BFE", // Lavender
	"#FFEAA7", // Pale yellow
	"#81ECEC", // Cyan
	"#FD79A8", // Pink
	"#B2BEC3", // Silver
	"#E17055", // Terracotta
	"#00CEC9", // Teal
}

// CategoryColor returns a stable color for a task category.
func CategoryColor(category string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(category))
	return categoryPalette[h.Sum32()%uint32(len(categoryPalette))]
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	HeaderInfo lipgloss.Style

	// Timeline
	Axis        lipgloss.Style
	AxisLabel   lipgloss.Style
	PaneTitle   lipgloss.Style
	Bar         lipgloss.Style
	BarSelected lipgloss.Style
	Empty       lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Error
	ErrorMsg lipgloss.Style

	// Detail view
	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		HeaderInfo: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Axis: lipgloss.NewStyle().
			Foreground(Colors.AxisLine),

		AxisLabel: lipgloss.NewStyle().
			Foreground(Colors.TextNormal),

		PaneTitle: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		Bar: lipgloss.NewStyle().
			Foreground(Colors.TextOnBar),

		BarSelected: lipgloss.NewStyle().
			Foreground(Colors.TextOnBar).
			Background(Colors.Highlight).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		DetailLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(12),

		DetailValue: lipgloss.NewStyle(),
	}
}

// BarStyle returns the style of a bar of the given category.
// Highlighted bars are drawn bold and underlined.
func (s Styles) BarStyle(category string, highlighted bool) lipgloss.Style {
	st := s.Bar.Background(CategoryColor(category))
	if highlighted {
		st = st.Bold(true).Underline(true)
	}
	return st
}
