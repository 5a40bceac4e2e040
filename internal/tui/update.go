package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/gesture"
)

// panFraction is the share of the window moved by one pan key press.
const panFraction = 0.1

// noComponent is the picker entry that hides the component pane.
const noComponent = "(none)"

// componentItem is a list entry of the component picker.
type componentItem string

// Title implements list.DefaultItem.
func (i componentItem) Title() string { return string(i) }

// Description implements list.DefaultItem.
func (i componentItem) Description() string { return "" }

// FilterValue implements list.Item.
func (i componentItem) FilterValue() string { return string(i) }

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Update all layout-dependent sizes
		m.updateLayoutSizes()
		return m, nil

	case MsgTraceLoaded:
		m.loading = false
		m.start(msg.Tasks)
		return m, m.afterInput()

	case MsgViewLoaded:
		if msg.Seq != m.seq {
			// Superseded by a later commit
			return m, nil
		}
		m.loading = false
		m.timeline.coord.Render(msg.Timeline)
		m.component.coord.Render(msg.Component)
		return m, nil

	case MsgNamesLoaded:
		m.names = msg.Names
		items := make([]list.Item, 0, len(msg.Names)+1)
		items = append(items, componentItem(noComponent))
		for _, n := range msg.Names {
			items = append(items, componentItem(n))
		}
		return m, m.compList.SetItems(items)

	case MsgSettle:
		return m, m.handleSettle(msg)

	case MsgWatchStarted:
		m.watchChanges = msg.Changes
		return m, waitForChange(msg.Changes)

	case MsgTraceChanged:
		if m.ready {
			m.pending = true
		}
		return m, tea.Batch(m.loadNames(), m.afterInput(), m.rewatch())

	case MsgError:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// rewatch returns a command that waits on the current watch channel.
func (m *Model) rewatch() tea.Cmd {
	if m.watchChanges == nil {
		return nil
	}
	return waitForChange(m.watchChanges)
}

// handleSettle commits the pane window when its settle timer is current.
// A timer that fired early is rescheduled for the remaining time.
func (m *Model) handleSettle(msg MsgSettle) tea.Cmd {
	p := m.paneByName(msg.Pane)
	if p == nil || !m.ready {
		return nil
	}
	d := p.ctrl.Debouncer()
	if !p.ctrl.Settle(msg.Token) && d.Pending(msg.Token) {
		return settleAfter(p.name, msg.Token, d.Remaining())
	}
	return m.afterInput()
}

// afterInput schedules settle timers for newly armed debouncers and loads
// a committed window.
func (m *Model) afterInput() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range []*pane{m.timeline, m.component} {
		d := p.ctrl.Debouncer()
		if token, ok := d.NextSchedule(); ok {
			cmds = append(cmds, settleAfter(p.name, token, d.Delay()))
		}
	}
	if m.pending && m.ready {
		m.pending = false
		cmds = append(cmds, m.loadView(), m.saveView())
	}
	return tea.Batch(cmds...)
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow ctrl+c to quit
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	switch m.mode {
	case ModeFilter:
		return m.handleFilterMode(msg)
	case ModeComponents:
		return m.handleComponentsMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeDetail:
		return m.handleDetailMode(msg)
	case ModeNormal:
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.cancelGestures()
		return m, m.afterInput()

	case key.Matches(msg, m.keys.Filter):
		m.mode = ModeFilter
		m.filterInput.SetValue(m.where)
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.Components):
		m.mode = ModeComponents
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		t := m.taskAt(m.cursorCol, m.cursorRow)
		if t == nil {
			t = m.selected
		}
		if t == nil {
			return m, nil
		}
		m.openDetail(t)
		return m, nil
	}

	if !m.ready {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(-1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(1)
	case key.Matches(msg, m.keys.PanLeft):
		m.pan(-1)
	case key.Matches(msg, m.keys.PanRight):
		m.pan(1)
	case key.Matches(msg, m.keys.Back):
		m.group.Back()
	case key.Matches(msg, m.keys.Fit):
		m.timeline.coord.PermanentTimeShift(m.span.StartTime, m.span.EndTime)
	case key.Matches(msg, m.keys.Reload):
		m.pending = true
	}
	return m, m.afterInput()
}

// zoom feeds one wheel notch at the centre of the timeline. A negative
// direction zooms in.
func (m *Model) zoom(direction float64) {
	p := m.timeline
	p.ctrl.Handle(gesture.Wheel{X: p.centerX(), DeltaY: direction * m.config.Gesture.WheelStep})
}

// pan shifts the window by panFraction of its width.
func (m *Model) pan(direction float64) {
	p := m.timeline
	width := p.coord.AxisStatus().PixelWidth()
	p.ctrl.Handle(gesture.Wheel{X: p.centerX(), DeltaX: direction * width * panFraction})
}

// cancelGestures aborts active gestures, or clears the selection when no
// gesture is active.
func (m *Model) cancelGestures() {
	cancelled := false
	for _, p := range []*pane{m.timeline, m.component} {
		if p.ctrl.State() != gesture.StateIdle {
			p.ctrl.Handle(gesture.Cancel{})
			cancelled = true
		}
	}
	m.dragPane = nil
	if !cancelled {
		m.selectTask(nil)
		m.err = nil
	}
}

// quit stops the watcher and exits.
func (m *Model) quit() tea.Cmd {
	if m.cancelWatch != nil {
		m.cancelWatch()
	}
	return tea.Quit
}

// handleMouseMsg maps mouse input in cells to pointer events in pixels.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.cursorCol, m.cursorRow = msg.X, msg.Y
	if !m.mode.AcceptsPointer() || !m.ready {
		return m, nil
	}

	step := m.config.Gesture.WheelStep
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		p := m.paneAt(msg.Y)
		if p == nil {
			return m, nil
		}
		x, y := p.pixel(msg.X, msg.Y)
		ev := gesture.Wheel{X: x, Y: y}
		switch {
		case msg.Button == tea.MouseButtonWheelLeft, msg.Button == tea.MouseButtonWheelUp && msg.Shift:
			ev.DeltaX = -step
		case msg.Button == tea.MouseButtonWheelRight, msg.Button == tea.MouseButtonWheelDown && msg.Shift:
			ev.DeltaX = step
		case msg.Button == tea.MouseButtonWheelUp:
			ev.DeltaY = -step
		default:
			ev.DeltaY = step
		}
		p.ctrl.Handle(ev)
		return m, m.afterInput()
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		p := m.paneAt(msg.Y)
		if p == nil {
			return m, nil
		}
		m.dragPane = p
		x, y := p.pixel(msg.X, msg.Y)
		p.ctrl.Handle(gesture.MouseDown{X: x, Y: y})

	case tea.MouseActionMotion:
		if m.dragPane == nil {
			return m, nil
		}
		x, y := m.dragPane.pixel(msg.X, msg.Y)
		m.dragPane.ctrl.Handle(gesture.MouseMove{X: x, Y: y})

	case tea.MouseActionRelease:
		p := m.dragPane
		if p == nil {
			return m, nil
		}
		m.dragPane = nil
		x, y := p.pixel(msg.X, msg.Y)
		p.ctrl.Handle(gesture.MouseUp{X: x, Y: y})
		if !p.ctrl.Moved() {
			// A click selects the task under the pointer.
			m.selectTask(p.taskAt(msg.X, msg.Y))
		}
	}
	return m, m.afterInput()
}

// handleFilterMode handles the where-filter input.
func (m *Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.filterInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.mode = ModeNormal
		m.filterInput.Blur()
		m.setWhere(strings.TrimSpace(m.filterInput.Value()))
		return m, m.afterInput()
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// setWhere changes the location filter of the timeline and reloads it.
func (m *Model) setWhere(where string) {
	if where == m.where {
		return
	}
	m.where = where
	m.timeline.coord.SetLocation(where)
	m.selectTask(nil)
	if m.ready {
		m.pending = true
	}
}

// handleComponentsMode handles the component picker.
func (m *Model) handleComponentsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := m.compList.FilterState() == list.Filtering
	switch {
	case !filtering && key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case !filtering && key.Matches(msg, m.keys.Enter):
		m.mode = ModeNormal
		item, ok := m.compList.SelectedItem().(componentItem)
		if !ok {
			return m, nil
		}
		name := string(item)
		if name == noComponent {
			name = ""
		}
		m.setComponent(name)
		return m, m.afterInput()
	}

	var cmd tea.Cmd
	m.compList, cmd = m.compList.Update(msg)
	return m, cmd
}

// setComponent shows a component in the component pane. Without the
// component pane the component becomes the timeline filter.
func (m *Model) setComponent(name string) {
	if !m.config.View.ComponentPane {
		m.setWhere(name)
		return
	}
	if name == m.location {
		return
	}
	m.location = name
	m.component.coord.SetLocation(name)
	m.component.coord.Render(nil)
	m.updateLayoutSizes()
	if m.ready && name != "" {
		m.pending = true
	}
}

// handleHelpMode handles input while the help overlay is shown.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, m.quit()
	}
	m.mode = ModeNormal
	return m, nil
}

// handleDetailMode handles input in the task detail view.
func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		m.detailFor = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// openDetail shows the detail view of t.
func (m *Model) openDetail(t *domain.Task) {
	m.detailFor = t
	m.mode = ModeDetail
	m.selectTask(t)
	m.detailViewport.SetContent(m.detailContent(t))
	m.detailViewport.GotoTop()
}
