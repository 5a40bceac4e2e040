package tui

import "github.com/runoshun/daisen/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTraceLoaded is sent when the first full load of the trace completes.
// Its span becomes the initial window.
type MsgTraceLoaded struct {
	Tasks []*domain.Task
}

func (MsgTraceLoaded) sealed() {}

// MsgViewLoaded is sent when the tasks of a committed window arrive.
// Seq identifies the request; responses to superseded requests are dropped.
// Fields are ordered to minimize memory padding.
type MsgViewLoaded struct {
	Timeline  []*domain.Task
	Component []*domain.Task
	Window    domain.TimeWindow
	Seq       int
}

func (MsgViewLoaded) sealed() {}

// MsgNamesLoaded is sent when the component names are loaded.
type MsgNamesLoaded struct {
	Names []string
}

func (MsgNamesLoaded) sealed() {}

// MsgSettle is sent when the settle timer of a pane expires.
type MsgSettle struct {
	Pane  string
	Token uint64
}

func (MsgSettle) sealed() {}

// MsgWatchStarted is sent once the trace watcher is running.
type MsgWatchStarted struct {
	Changes <-chan struct{}
}

func (MsgWatchStarted) sealed() {}

// MsgTraceChanged is sent when the trace file changed on disk.
type MsgTraceChanged struct{}

func (MsgTraceChanged) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
