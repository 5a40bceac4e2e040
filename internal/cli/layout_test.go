package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/testutil"
)

func layoutFixture() *testutil.MockTraceSource {
	return testutil.NewMockTraceSource(
		&domain.Task{ID: "a", Kind: "kernel", What: "launch", Location: "GPU", StartTime: 0, EndTime: 10},
		&domain.Task{ID: "b", ParentID: "a", Kind: "req", What: "read", Location: "GPU", StartTime: 0, EndTime: 5},
		&domain.Task{ID: "c", ParentID: "a", Kind: "req", What: "write", Location: "GPU", StartTime: 2, EndTime: 8},
	)
}

func findLayoutTask(doc layoutDocument, id string) *layoutTask {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			return &doc.Tasks[i]
		}
	}
	return nil
}

func TestLayoutCommand_TextOutput(t *testing.T) {
	// Setup
	container := newTestContainer(layoutFixture())

	// Create command
	cmd := newLayoutCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Label:  GPU")
	assert.Contains(t, output, "Window: 0 - 10s")
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "kernel-launch")

	// Children follow their parent, indented one level
	lines := strings.Split(output, "\n")
	var rows []string
	for _, l := range lines {
		trimmed := strings.TrimLeft(l, " ")
		if strings.HasPrefix(trimmed, "a ") || strings.HasPrefix(trimmed, "b ") || strings.HasPrefix(trimmed, "c ") {
			rows = append(rows, l)
		}
	}
	require.Len(t, rows, 3)
	assert.True(t, strings.HasPrefix(rows[0], "a "))
	assert.True(t, strings.HasPrefix(rows[1], "  b "))
	assert.True(t, strings.HasPrefix(rows[2], "  c "))
}

func TestLayoutCommand_JSONOutput(t *testing.T) {
	// Setup
	container := newTestContainer(layoutFixture())

	// Create command
	cmd := newLayoutCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json", "--width", "1000", "--height", "600"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	var doc layoutDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "GPU", doc.Label)
	assert.Equal(t, domain.TimeWindow{StartTime: 0, EndTime: 10}, doc.Window)
	assert.Equal(t, 2, doc.MaxLevel)
	require.Len(t, doc.Tasks, 3)

	a := findLayoutTask(doc, "a")
	require.NotNil(t, a)
	assert.InDelta(t, 0, a.Dim.X, 1e-9)
	assert.InDelta(t, 1000, a.Dim.Width, 1e-9)

	// b and c overlap so they take separate lanes at 100px per second
	b := findLayoutTask(doc, "b")
	c := findLayoutTask(doc, "c")
	require.NotNil(t, b)
	require.NotNil(t, c)
	assert.InDelta(t, 500, b.Dim.Width, 1e-9)
	assert.InDelta(t, 200, c.Dim.X, 1e-9)
	assert.InDelta(t, 600, c.Dim.Width, 1e-9)
	assert.NotEqual(t, b.Lane, c.Lane)
	assert.Equal(t, "a", b.ParentID)
}

func TestLayoutCommand_YAMLOutput(t *testing.T) {
	// Setup
	container := newTestContainer(layoutFixture())

	// Create command
	cmd := newLayoutCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"-o", "yaml"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	var doc layoutDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "GPU", doc.Label)
	assert.Len(t, doc.Tasks, 3)
}

func TestLayoutCommand_WindowFlags(t *testing.T) {
	// Setup
	source := layoutFixture()
	container := newTestContainer(source)

	// Create command
	cmd := newLayoutCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--start", "5", "--end", "10", "-o", "json"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	var doc layoutDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, domain.TimeWindow{StartTime: 5, EndTime: 10}, doc.Window)

	require.Len(t, source.Queries, 1)
	require.NotNil(t, source.Queries[0].StartTime)
	require.NotNil(t, source.Queries[0].EndTime)
	assert.Equal(t, 5.0, *source.Queries[0].StartTime)
	assert.Equal(t, 10.0, *source.Queries[0].EndTime)
}

func TestLayoutCommand_UnsetWindowFlagsAreUnbounded(t *testing.T) {
	// Setup
	source := layoutFixture()
	container := newTestContainer(source)

	// Create command
	cmd := newLayoutCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--where", "GPU"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	require.Len(t, source.Queries, 1)
	assert.Nil(t, source.Queries[0].StartTime)
	assert.Nil(t, source.Queries[0].EndTime)
	assert.Equal(t, "GPU", source.Queries[0].Where)
}

func TestLayoutCommand_InvalidFormat(t *testing.T) {
	// Setup
	source := layoutFixture()
	container := newTestContainer(source)

	// Create command
	cmd := newLayoutCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "csv"})

	// Execute
	err := cmd.Execute()

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.Zero(t, source.TasksCalls)
}

func TestLayoutCommand_ReversedWindow(t *testing.T) {
	// Setup
	container := newTestContainer(layoutFixture())

	// Create command
	cmd := newLayoutCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--start", "8", "--end", "2"})

	// Execute
	err := cmd.Execute()

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestLayoutCommand_InvalidSize(t *testing.T) {
	// Setup
	container := newTestContainer(layoutFixture())

	// Create command
	cmd := newLayoutCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--width", "0"})

	// Execute
	err := cmd.Execute()

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidViewSize)
}

func TestLayoutCommand_WarnsAboutParentCycles(t *testing.T) {
	// Setup
	source := testutil.NewMockTraceSource(
		&domain.Task{ID: "a", StartTime: 0, EndTime: 10},
		&domain.Task{ID: "x", ParentID: "y", StartTime: 1, EndTime: 2},
		&domain.Task{ID: "y", ParentID: "x", StartTime: 1, EndTime: 2},
	)
	container := newTestContainer(source)

	// Create command
	cmd := newLayoutCommand(container)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"-o", "json"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Warning: dropped tasks in a parent cycle: x, y")

	var doc layoutDocument
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, []string{"x", "y"}, doc.Dropped)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "a", doc.Tasks[0].ID)
}

func TestLayoutCommand_SourceError(t *testing.T) {
	// Setup
	source := layoutFixture()
	source.TasksErr = errors.New("connection refused")
	container := newTestContainer(source)

	// Create command
	cmd := newLayoutCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
