package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/daisen/internal/gesture"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Message  string // Left side, e.g. the task under the cursor
	Right    string // Right side, e.g. gesture state
	KeyHints []KeyHint
	IsError  bool
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a one-line status bar above the footer.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// SetWidth updates the status line width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	hints := make([]string, 0, len(info.KeyHints)+1)
	for _, h := range info.KeyHints {
		hints = append(hints, s.styles.FooterKey.Render(h.Key)+" "+h.Desc)
	}
	if info.Message != "" {
		msg := info.Message
		if info.IsError {
			msg = s.styles.ErrorMsg.Render(msg)
		}
		hints = append(hints, msg)
	}
	content := strings.Join(hints, "  ")

	rightContent := lipgloss.NewStyle().Foreground(Colors.Muted).Render(info.Right)
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	// Truncate content if needed
	maxContentWidth := s.width - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			truncateStyle := lipgloss.NewStyle().MaxWidth(maxContentWidth - 3)
			content = truncateStyle.Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := max(s.width-contentLen-rightLen, 1)
	return s.styles.Footer.Render(content + strings.Repeat(" ", spacing) + rightContent)
}

// statusInfo returns status line info for the TUI model.
func (m *Model) statusInfo() StatusLineInfo {
	var info StatusLineInfo

	switch {
	case m.err != nil:
		info.Message = "Error: " + m.err.Error()
		info.IsError = true
	case m.mode == ModeComponents:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "show"},
			{Key: "/", Desc: "search"},
			{Key: "esc", Desc: "cancel"},
		}
	case m.mode == ModeDetail:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "scroll"},
			{Key: "esc", Desc: "back"},
		}
	default:
		if t := m.taskAt(m.cursorCol, m.cursorRow); t != nil {
			info.Message = hoverText(t)
		} else if m.selected != nil {
			info.Message = hoverText(m.selected)
		}
	}

	var right []string
	for _, p := range []*pane{m.timeline, m.component} {
		if s := p.ctrl.State(); s != gesture.StateIdle {
			right = append(right, p.name+":"+s.String())
		}
	}
	if m.loading {
		right = append(right, "loading...")
	}
	if m.group != nil {
		if n := m.group.History().Len(); n > 1 {
			right = append(right, "history:"+strconv.Itoa(n))
		}
	}
	info.Right = strings.Join(right, "  ")
	return info
}
