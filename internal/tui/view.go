package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/daisen/internal/axis"
	"github.com/runoshun/daisen/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	body := max(m.height-chromeRows, 1)
	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeDetail:
		content = m.detailViewport.View()
	case ModeComponents:
		content = m.compList.View()
	case ModeNormal, ModeFilter:
		content = m.viewPanes()
	}
	content = lipgloss.NewStyle().Height(body).MaxHeight(body).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewAxis(),
		content,
		m.viewStatus(),
		m.viewFooter(),
	)
}

// viewHeader renders the title, the pane label and the visible window.
func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("daisen")
	if label := m.timeline.coord.Result().Label; label != "" {
		title += " " + m.styles.HeaderText.Render(label)
	}
	if m.where != "" {
		title += " " + m.styles.HeaderInfo.Render("where="+m.where)
	}

	var right string
	if m.ready {
		w := m.timeline.coord.Window()
		right = m.styles.HeaderInfo.Render(axis.FormatWindow(w.StartTime, w.EndTime))
	}
	return justify(title, right, m.width)
}

// viewAxis renders the tick line of the timeline axis.
func (m *Model) viewAxis() string {
	if !m.ready {
		return ""
	}
	cw, _ := m.timeline.canvas.CellSize()
	return m.styles.Axis.Render(axisLine(m.timeline.coord.Axis(), m.width, cw))
}

// viewPanes renders the timeline and, when shown, the component pane.
func (m *Model) viewPanes() string {
	if !m.ready {
		if m.err != nil {
			return m.styles.ErrorMsg.Render("Error: " + m.err.Error())
		}
		return m.styles.Empty.Render("Loading trace...")
	}

	parts := []string{m.viewPane(m.timeline)}
	if m.showComponentPane() && m.component.rows > 0 {
		title := m.styles.PaneTitle.Render("Component " + m.location)
		parts = append(parts, title, m.viewPane(m.component))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// viewPane renders the canvas of p, or a placeholder when nothing is drawn.
func (m *Model) viewPane(p *pane) string {
	if len(p.canvas.Result().Tasks) == 0 {
		return m.styles.Empty.Render("No tasks in this window")
	}
	return p.canvas.Render(m.styles)
}

// viewStatus renders the status line.
func (m *Model) viewStatus() string {
	if m.mode == ModeFilter {
		return m.styles.InputPrompt.Render("where: ") + m.filterInput.View()
	}
	return NewStatusLine(m.width, &m.styles).Render(m.statusInfo())
}

// viewFooter renders the short key help.
func (m *Model) viewFooter() string {
	return m.help.View(m.keys)
}

// viewHelp renders the help overlay.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	sections := []string{"WINDOW", "HISTORY", "INSPECT", "GENERAL"}

	cols := make([]string, 0, len(sections))
	for i, group := range m.keys.FullHelp() {
		var b strings.Builder
		b.WriteString(m.styles.PaneTitle.Render(sections[i]))
		b.WriteString("\n")
		for _, bind := range group {
			h := bind.Help()
			fmt.Fprintf(&b, "%s %s\n", m.styles.HelpKey.Width(8).Render(h.Key), m.styles.HelpDesc.Render(h.Desc))
		}
		cols = append(cols, b.String(), "    ")
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	mouse := m.styles.HelpDesc.Render("drag: pan   wheel: zoom   shift+wheel: pan   click: select")
	return m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content, mouse))
}

// detailContent renders the properties of t for the detail view.
func (m *Model) detailContent(t *domain.Task) string {
	var b strings.Builder
	labelStyle := m.styles.DetailLabel
	valueStyle := m.styles.DetailValue

	b.WriteString(m.styles.DetailTitle.Render("Task " + t.ID))
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Parent", t.ParentID)
	row("Kind", t.Kind)
	row("What", t.What)
	row("Location", t.Location)
	row("Start", axis.FormatTime(t.StartTime))
	row("End", axis.FormatTime(t.EndTime))
	row("Duration", axis.FormatTime(t.Duration()))
	if t.Level > 0 {
		row("Level", fmt.Sprintf("%d", t.Level))
		row("Lane", fmt.Sprintf("%d", t.YIndex))
	}

	if len(t.Milestones) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.PaneTitle.Render("Milestones"))
		b.WriteString("\n")
		for _, ms := range t.Milestones {
			mark := " "
			if ms.Achieved {
				mark = "x"
			}
			fmt.Fprintf(&b, "  [%s] %-10s %s %s\n", mark, axis.FormatTime(ms.Time), ms.Name, ms.Kind)
		}
	}

	if len(t.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.PaneTitle.Render("Steps"))
		b.WriteString("\n")
		for _, st := range t.Steps {
			fmt.Fprintf(&b, "  %-10s %s %s\n", axis.FormatTime(st.Time), st.Kind, st.What)
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("[esc] back"))
	return b.String()
}

// hoverText describes a task in one line.
func hoverText(t *domain.Task) string {
	parts := []string{t.ID}
	if c := strings.TrimSpace(t.Kind + " " + t.What); c != "" {
		parts = append(parts, c)
	}
	if t.Location != "" {
		parts = append(parts, "@"+t.Location)
	}
	parts = append(parts, axis.FormatWindow(t.StartTime, t.EndTime))
	return strings.Join(parts, "  ")
}

// justify places left and right at the edges of a width-wide line.
func justify(left, right string, width int) string {
	spacing := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", spacing) + right
}
