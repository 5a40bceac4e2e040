// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/daisen/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTraceSource is a test double for domain.TraceSource.
// Fields are ordered to minimize memory padding.
type MockTraceSource struct {
	TasksErr      error
	NamesErr      error
	Queries       []domain.TraceQuery
	TaskList      []*domain.Task
	Names         []string
	mu            sync.Mutex
	TasksCalls    int
	NamesCalls    int
	CloneOnReturn bool
}

// NewMockTraceSource creates a MockTraceSource serving tasks.
func NewMockTraceSource(tasks ...*domain.Task) *MockTraceSource {
	return &MockTraceSource{TaskList: tasks, CloneOnReturn: true}
}

// Tasks returns the configured tasks matching q.
func (m *MockTraceSource) Tasks(_ context.Context, q domain.TraceQuery) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TasksCalls++
	m.Queries = append(m.Queries, q)
	if m.TasksErr != nil {
		return nil, m.TasksErr
	}
	var out []*domain.Task
	for _, t := range m.TaskList {
		if !q.Match(t) {
			continue
		}
		if m.CloneOnReturn {
			t = t.Clone()
		}
		out = append(out, t)
	}
	return out, nil
}

// ComponentNames returns the configured names.
func (m *MockTraceSource) ComponentNames(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NamesCalls++
	if m.NamesErr != nil {
		return nil, m.NamesErr
	}
	return m.Names, nil
}

// LogEntry is a message recorded by MockLogger.
type LogEntry struct {
	Level    string
	Scope    string
	Category string
	Msg      string
}

// MockLogger records log messages.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, scope, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Scope: scope, Category: category, Msg: msg})
}

// Debug records a debug message.
func (m *MockLogger) Debug(scope, category, msg string) { m.add("DEBUG", scope, category, msg) }

// Info records an info message.
func (m *MockLogger) Info(scope, category, msg string) { m.add("INFO", scope, category, msg) }

// Warn records a warning message.
func (m *MockLogger) Warn(scope, category, msg string) { m.add("WARN", scope, category, msg) }

// Error records an error message.
func (m *MockLogger) Error(scope, category, msg string) { m.add("ERROR", scope, category, msg) }

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config    *domain.Config
	LoadErr   error
	GlobalErr error
}

// Load returns the configured config or defaults.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or defaults.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	GlobalInfo  domain.ConfigInfo
	ProjectInfo domain.ConfigInfo
	InitErr     error
	InitCalls   []string
}

// GetGlobalConfigInfo returns the configured info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo { return m.GlobalInfo }

// GetProjectConfigInfo returns the configured info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo { return m.ProjectInfo }

// InitProjectConfig records the call.
func (m *MockConfigManager) InitProjectConfig(force bool) (string, error) {
	m.InitCalls = append(m.InitCalls, fmt.Sprintf("project force=%v", force))
	return m.ProjectInfo.Path, m.InitErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(force bool) (string, error) {
	m.InitCalls = append(m.InitCalls, fmt.Sprintf("global force=%v", force))
	return m.GlobalInfo.Path, m.InitErr
}

// Ensure mocks implement the domain ports.
var (
	_ domain.Clock         = (*MockClock)(nil)
	_ domain.TraceSource   = (*MockTraceSource)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
	_ domain.ConfigLoader  = (*MockConfigLoader)(nil)
	_ domain.ConfigManager = (*MockConfigManager)(nil)
)

// MockViewStateStore is an in-memory domain.ViewStateStore.
// Fields are ordered to minimize memory padding.
type MockViewStateStore struct {
	LoadErr error
	SaveErr error
	States  map[string]domain.ViewState
	Saves   int
	mu      sync.Mutex
}

// NewMockViewStateStore creates an empty MockViewStateStore.
func NewMockViewStateStore() *MockViewStateStore {
	return &MockViewStateStore{States: make(map[string]domain.ViewState)}
}

// Load returns the state stored for key.
func (m *MockViewStateStore) Load(key string) (domain.ViewState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return domain.ViewState{}, false, m.LoadErr
	}
	s, ok := m.States[key]
	return s, ok, nil
}

// Save stores state for key.
func (m *MockViewStateStore) Save(key string, state domain.ViewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.States[key] = state
	return nil
}

var _ domain.ViewStateStore = (*MockViewStateStore)(nil)
