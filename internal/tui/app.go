package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/daisen/internal/app"
	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/usecase"
	"github.com/runoshun/daisen/internal/view"
)

// chromeRows is the number of rows used by the header, axis, status line
// and footer.
const chromeRows = 4

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container    *app.Container
	config       *domain.Config
	err          error
	cancelWatch  context.CancelFunc
	watchChanges <-chan struct{} // nil until the watcher starts

	// Panes
	timeline  *pane
	component *pane
	dragPane  *pane
	group     *view.Group
	selected  *domain.Task
	detailFor *domain.Task
	resumed   *domain.TimeWindow // Saved window to reopen once the span is known

	// State (slices - contain pointers)
	names []string

	// Components (structs with pointers)
	keys           KeyMap
	styles         Styles
	help           help.Model
	compList       list.Model
	detailViewport viewport.Model
	filterInput    textinput.Model

	// Strings
	where    string // Location filter of the timeline pane
	location string // Component shown in the component pane

	// Numeric state (smaller types last)
	span      domain.TimeWindow
	mode      Mode
	width     int
	height    int
	seq       int
	cursorCol int
	cursorRow int
	loading   bool
	pending   bool // A committed window is waiting to be loaded
	ready     bool // The trace span is known
}

// New creates a new TUI Model with the given container.
// The container's trace source must already be open.
func New(c *app.Container) *Model {
	fi := textinput.New()
	fi.Placeholder = "Component name (empty = all)"
	fi.CharLimit = 200

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	compList := list.New([]list.Item{}, delegate, 0, 0)
	compList.Title = "Components"
	compList.SetShowStatusBar(false)
	compList.SetShowHelp(false)
	compList.SetFilteringEnabled(true)
	compList.DisableQuitKeybindings()

	m := &Model{
		container:   c,
		config:      c.AppConfig,
		mode:        ModeNormal,
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		help:        help.New(),
		compList:    compList,
		filterInput: fi,
	}
	m.timeline = newPane(paneTimeline, c)
	m.component = newPane(paneComponent, c)
	return m
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	m.restoreView()
	return tea.Batch(
		m.loadTrace(),
		m.loadNames(),
		m.startWatch(),
	)
}

// restoreView reapplies the filters saved for the trace and keeps the saved
// window for start.
func (m *Model) restoreView() {
	if !m.config.View.Resume {
		return
	}
	out, err := m.container.RestoreViewUseCase().Execute(context.Background(), usecase.RestoreViewInput{
		Key: m.container.TraceKey,
	})
	if err != nil {
		m.container.FileLogger.Warn("tui", "view", err.Error())
		return
	}
	if !out.Found {
		return
	}
	m.where = out.State.Where
	m.timeline.coord.SetLocation(m.where)
	m.location = out.State.Location
	m.component.coord.SetLocation(m.location)
	if out.HasWindow {
		w := out.State.Window
		m.resumed = &w
	}
}

// saveView returns a command that remembers the committed view of the
// trace. Failures are only logged.
func (m *Model) saveView() tea.Cmd {
	if !m.config.View.Resume || m.container.TraceKey == "" {
		return nil
	}
	uc := m.container.SaveViewUseCase()
	logger := m.container.FileLogger
	in := usecase.SaveViewInput{
		Key:      m.container.TraceKey,
		Where:    m.where,
		Location: m.location,
		Window:   m.group.Window(),
	}
	return func() tea.Msg {
		if err := uc.Execute(context.Background(), in); err != nil {
			logger.Warn("tui", "view", err.Error())
		}
		return nil
	}
}

// loadTrace returns a command that loads every task of the timeline to
// find the span of the trace.
func (m *Model) loadTrace() tea.Cmd {
	m.loading = true
	uc := m.container.LoadTasksUseCase()
	query := domain.TraceQuery{Where: m.where}
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.LoadTasksInput{Query: query})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTraceLoaded{Tasks: out.Tasks}
	}
}

// loadNames returns a command that loads the component names.
func (m *Model) loadNames() tea.Cmd {
	uc := m.container.LoadComponentNamesUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background())
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgNamesLoaded{Names: out.Names}
	}
}

// loadView returns a command that loads the tasks of the group window.
// Responses to earlier requests are discarded on arrival.
func (m *Model) loadView() tea.Cmd {
	m.seq++
	m.loading = true
	seq := m.seq
	in := usecase.LoadViewInput{
		Where:    m.where,
		Location: m.componentLocation(),
		Window:   m.group.Window(),
	}
	uc := m.container.LoadViewUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgViewLoaded{
			Timeline:  out.Timeline,
			Component: out.Component,
			Window:    in.Window,
			Seq:       seq,
		}
	}
}

// startWatch returns a command that starts the trace watcher, or nil when
// the source cannot be watched.
func (m *Model) startWatch() tea.Cmd {
	w := m.container.Watcher
	if w == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelWatch = cancel
	return func() tea.Msg {
		ch, err := w.Watch(ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgWatchStarted{Changes: ch}
	}
}

// waitForChange returns a command that blocks until the next trace change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return MsgTraceChanged{}
	}
}

// settleAfter returns a command that delivers MsgSettle after d.
func settleAfter(pane string, token uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return MsgSettle{Pane: pane, Token: token}
	})
}

// start builds the pane group once the span of the trace is known.
func (m *Model) start(tasks []*domain.Task) {
	span, ok := domain.SpanOf(tasks)
	if !ok || span.Duration() <= 0 {
		span = domain.TimeWindow{StartTime: span.StartTime, EndTime: span.StartTime + 1}
	}
	m.span = span
	m.group = view.NewGroup(span,
		view.WithHistory(view.NewHistory(0)),
		view.OnGroupCommit(func(domain.TimeWindow) { m.pending = true }),
	)
	m.group.Add(m.timeline.coord)
	m.group.Add(m.component.coord)
	m.timeline.coord.Render(tasks)
	m.ready = true

	if w := m.resumed; w != nil && w.Overlaps(span) {
		m.group.Commit(w.StartTime, w.EndTime)
	}
	m.resumed = nil
	if m.componentLocation() != "" {
		m.pending = true
	}
}

// componentLocation returns the location of the component pane, or "" when
// the pane is hidden.
func (m *Model) componentLocation() string {
	if !m.showComponentPane() {
		return ""
	}
	return m.location
}

// showComponentPane reports whether the component pane is on screen.
func (m *Model) showComponentPane() bool {
	return m.config.View.ComponentPane && m.location != ""
}

// panes returns the panes on screen, timeline first.
func (m *Model) panes() []*pane {
	if m.showComponentPane() {
		return []*pane{m.timeline, m.component}
	}
	return []*pane{m.timeline}
}

// paneByName returns the pane with the given name, or nil.
func (m *Model) paneByName(name string) *pane {
	switch name {
	case paneTimeline:
		return m.timeline
	case paneComponent:
		return m.component
	}
	return nil
}

// paneAt returns the pane covering a terminal row, or nil.
func (m *Model) paneAt(row int) *pane {
	for _, p := range m.panes() {
		if p.contains(row) {
			return p
		}
	}
	return nil
}

// taskAt returns the task drawn at a terminal cell, or nil.
func (m *Model) taskAt(col, row int) *domain.Task {
	if p := m.paneAt(row); p != nil {
		return p.taskAt(col, row)
	}
	return nil
}

// selectTask marks t and highlights every visible task of the same category.
// A nil t clears the selection.
func (m *Model) selectTask(t *domain.Task) {
	m.selected = t
	id := ""
	var pred func(*domain.Task) bool
	if t != nil {
		id = t.ID
		category := t.Category()
		pred = func(o *domain.Task) bool { return o.Category() == category }
	}
	for _, p := range []*pane{m.timeline, m.component} {
		p.canvas.Select(id)
		p.coord.Highlight(pred)
	}
}

// updateLayoutSizes recomputes pane regions after a resize or when the
// component pane appears or disappears.
func (m *Model) updateLayoutSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	body := max(m.height-chromeRows, 1)
	timelineRows, compRows := body, 0
	if m.showComponentPane() && body/3 >= 2 {
		compRows = body / 3
		timelineRows = body - compRows - 1
	}
	m.timeline.place(2, m.width, timelineRows)
	// The row between the panes holds the component title.
	m.component.place(2+timelineRows+1, m.width, compRows)

	m.help.Width = m.width
	m.compList.SetSize(m.width, body)
	m.detailViewport = viewport.New(m.width, body)
	if m.detailFor != nil {
		m.detailViewport.SetContent(m.detailContent(m.detailFor))
	}
}
