package domain

import (
	"context"
	"time"
)

// TraceSource provides task records for a trace.
type TraceSource interface {
	// Tasks returns the tasks matching the query.
	Tasks(ctx context.Context, q TraceQuery) ([]*Task, error)

	// ComponentNames returns the locations present in the trace.
	ComponentNames(ctx context.Context) ([]string, error)
}

// TraceQuery mirrors the query parameters accepted by the trace API.
// Fields are ordered to minimize memory padding.
type TraceQuery struct {
	StartTime *float64 // nil = unbounded
	EndTime   *float64 // nil = unbounded
	Where     string   // Location filter (empty = all)
	ID        string   // Exact task ID (empty = any)
	ParentID  string   // Exact parent ID (empty = any)
}

// WindowQuery returns a query for the given window and location.
func WindowQuery(w TimeWindow, where string) TraceQuery {
	start, end := w.StartTime, w.EndTime
	return TraceQuery{StartTime: &start, EndTime: &end, Where: where}
}

// Match reports whether the task satisfies the query.
func (q TraceQuery) Match(t *Task) bool {
	if q.Where != "" && t.Location != q.Where {
		return false
	}
	if q.ID != "" && t.ID != q.ID {
		return false
	}
	if q.ParentID != "" && t.ParentID != q.ParentID {
		return false
	}
	if q.StartTime != nil && t.EndTime < *q.StartTime {
		return false
	}
	if q.EndTime != nil && t.StartTime > *q.EndTime {
		return false
	}
	return true
}

// TraceWatcher signals when the underlying trace changes.
type TraceWatcher interface {
	// Watch returns a channel that receives a value per change.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// ViewState is the last committed view of a trace.
// Fields are ordered to minimize memory padding.
type ViewState struct {
	SavedAt  time.Time  `json:"saved_at"`
	Where    string     `json:"where,omitempty"`
	Location string     `json:"location,omitempty"`
	Window   TimeWindow `json:"window"`
}

// ViewStateStore remembers the last view of each trace.
// key identifies the trace, e.g. its absolute path or URL.
type ViewStateStore interface {
	// Load returns the saved state; ok is false when nothing was saved.
	Load(key string) (state ViewState, ok bool, err error)

	// Save records the state for key.
	Save(key string, state ViewState) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults <- global <- project).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// InitProjectConfig writes the template to the project config path.
	InitProjectConfig(force bool) (string, error)

	// InitGlobalConfig writes the template to the global config path.
	InitGlobalConfig(force bool) (string, error)
}

// ConfigInfo describes a config file location.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Logger writes diagnostic messages.
// scope is a view or component name; empty means global only.
type Logger interface {
	Debug(scope, category, msg string)
	Info(scope, category, msg string)
	Warn(scope, category, msg string)
	Error(scope, category, msg string)
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(_, _, _ string) {}
func (NopLogger) Info(_, _, _ string)  {}
func (NopLogger) Warn(_, _, _ string)  {}
func (NopLogger) Error(_, _, _ string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
