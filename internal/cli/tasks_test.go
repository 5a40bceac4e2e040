package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/testutil"
)

// =============================================================================
// Tasks Command Tests
// =============================================================================

func TestTasksCommand_ListsTasks(t *testing.T) {
	// Setup
	container := newTestContainer(layoutFixture())

	// Create command
	cmd := newTasksCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "PARENT")
	assert.Contains(t, output, "DURATION")
	assert.Contains(t, output, "req-read")
	assert.Contains(t, output, "5s")
}

func TestTasksCommand_ParentFilter(t *testing.T) {
	// Setup
	source := layoutFixture()
	container := newTestContainer(source)

	// Create command
	cmd := newTasksCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--parent", "a", "--start", "6"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	require.Len(t, source.Queries, 1)
	q := source.Queries[0]
	assert.Equal(t, "a", q.ParentID)
	require.NotNil(t, q.StartTime)
	assert.Equal(t, 6.0, *q.StartTime)
	assert.Nil(t, q.EndTime)

	// Only c overlaps [6, inf)
	output := buf.String()
	assert.Contains(t, output, "req-write")
	assert.NotContains(t, output, "req-read")
}

func TestTasksCommand_NoTasks(t *testing.T) {
	// Setup
	container := newTestContainer(layoutFixture())

	// Create command
	cmd := newTasksCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--id", "missing"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "No tasks found.\n", buf.String())
}

func TestTasksCommand_NoTraceConfigured(t *testing.T) {
	// Setup: no injected source and no trace path
	container := newTestContainer(nil)
	container.Source = nil

	// Create command
	cmd := newTasksCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	assert.ErrorIs(t, err, domain.ErrEmptyTracePath)
}

// =============================================================================
// Components Command Tests
// =============================================================================

func TestComponentsCommand_ListsNames(t *testing.T) {
	// Setup
	source := testutil.NewMockTraceSource()
	source.Names = []string{"GPU[0].SA[1]", "", "GPU[0].SA[0]", "GPU[0].SA[1]"}
	container := newTestContainer(source)

	// Create command
	cmd := newComponentsCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "GPU[0].SA[0]\nGPU[0].SA[1]\n", buf.String())
}

func TestComponentsCommand_SourceError(t *testing.T) {
	// Setup
	source := testutil.NewMockTraceSource()
	source.NamesErr = errors.New("timeout")
	container := newTestContainer(source)

	// Create command
	cmd := newComponentsCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
