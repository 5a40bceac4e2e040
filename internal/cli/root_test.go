package cli

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/daisen/internal/app"
	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/testutil"
)

// newTestContainer creates a container serving tasks from an in-memory source.
func newTestContainer(source *testutil.MockTraceSource) *app.Container {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return app.NewWithDeps(
		app.Config{},
		nil,
		source,
		&testutil.MockClock{NowTime: time.Now()},
		logger,
	)
}

// stubTUI replaces launchTUIFunc for the duration of the test and returns
// a pointer to the container it was called with.
func stubTUI(t *testing.T) **app.Container {
	t.Helper()
	originalFunc := launchTUIFunc
	t.Cleanup(func() { launchTUIFunc = originalFunc })

	var got *app.Container
	launched := &got
	launchTUIFunc = func(c *app.Container) error {
		*launched = c
		return nil
	}
	return launched
}

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	// Save original function and restore after test
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	// Mock launchTUIFunc to track if it was called
	called := false
	launchTUIFunc = func(c *app.Container) error {
		called = true
		return nil
	}

	// Create root command with nil container (not used in this test)
	root := NewRootCommand(nil, "test-version")

	// Execute root command without arguments
	root.SetArgs([]string{})
	err := root.Execute()

	// Verify launchTUIFunc was called
	assert.NoError(t, err)
	assert.True(t, called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	// Save original function and restore after test
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	// Mock launchTUIFunc to ensure it's NOT called
	called := false
	launchTUIFunc = func(c *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.False(t, called, "launchTUIFunc should NOT be called when --help is provided")
	assert.Contains(t, buf.String(), "View Commands:")
	assert.Contains(t, buf.String(), "Setup Commands:")
}

func TestNewRootCommand_TraceArgument_SelectsFileSource(t *testing.T) {
	launched := stubTUI(t)
	container := newTestContainer(testutil.NewMockTraceSource())
	container.AppConfig.Trace.Source = domain.SourceHTTP

	root := NewRootCommand(container, "test-version")
	root.SetArgs([]string{"trace.yaml"})
	err := root.Execute()

	require.NoError(t, err)
	require.NotNil(t, *launched)
	assert.Equal(t, "trace.yaml", container.AppConfig.Trace.Path)
	assert.Equal(t, domain.SourceFile, container.AppConfig.Trace.Source)
}

func TestNewRootCommand_TooManyArgs(t *testing.T) {
	stubTUI(t)

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{"a.json", "b.json"})
	err := root.Execute()

	assert.Error(t, err)
}

func TestNewRootCommand_URLFlag_AppliesToSubcommands(t *testing.T) {
	launched := stubTUI(t)
	container := newTestContainer(testutil.NewMockTraceSource())

	root := NewRootCommand(container, "test-version")
	root.SetArgs([]string{"tui", "--url", "http://sim:3001"})
	err := root.Execute()

	require.NoError(t, err)
	assert.Same(t, container, *launched)
	assert.Equal(t, "http://sim:3001", container.AppConfig.Trace.URL)
	assert.Equal(t, domain.SourceHTTP, container.AppConfig.Trace.Source)
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	stubTUI(t)
	container := newTestContainer(testutil.NewMockTraceSource())
	container.AppConfig.Warnings = []string{"unknown key in [layout]: padding"}

	root := NewRootCommand(container, "test-version")
	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetArgs([]string{})
	err := root.Execute()

	require.NoError(t, err)
	assert.Equal(t, "Warning: unknown key in [layout]: padding\n", stderr.String())
}

func TestTraceFlags_Apply(t *testing.T) {
	tests := []struct {
		name       string
		flags      traceFlags
		wantSource string
		wantPath   string
		wantURL    string
	}{
		{
			name:       "no flags keeps config",
			flags:      traceFlags{},
			wantSource: domain.SourceFile,
			wantPath:   "from-config.json",
			wantURL:    domain.DefaultTraceURL,
		},
		{
			name:       "url implies http",
			flags:      traceFlags{url: "http://other:9000"},
			wantSource: domain.SourceHTTP,
			wantPath:   "from-config.json",
			wantURL:    "http://other:9000",
		},
		{
			name:       "trace implies file",
			flags:      traceFlags{path: "run.yaml"},
			wantSource: domain.SourceFile,
			wantPath:   "run.yaml",
			wantURL:    domain.DefaultTraceURL,
		},
		{
			name:       "explicit source wins",
			flags:      traceFlags{path: "run.yaml", source: domain.SourceHTTP},
			wantSource: domain.SourceHTTP,
			wantPath:   "run.yaml",
			wantURL:    domain.DefaultTraceURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.NewDefaultConfig().Trace
			cfg.Path = "from-config.json"

			tt.flags.apply(&cfg)

			assert.Equal(t, tt.wantSource, cfg.Source)
			assert.Equal(t, tt.wantPath, cfg.Path)
			assert.Equal(t, tt.wantURL, cfg.URL)
		})
	}
}
