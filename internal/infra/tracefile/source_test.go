package tracefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonTrace = `[
  {"id": "2", "parent_id": "1", "kind": "req", "what": "read", "location": "GPU[0].L1", "start_time": 2, "end_time": 4,
   "steps": [{"time": 3, "what": "hit", "kind": "cache"}]},
  {"id": "1", "parent_id": "", "kind": "kernel", "what": "launch", "location": "GPU[0]", "start_time": 0, "end_time": 10,
   "milestones": [{"name": "dispatched", "kind": "dependency", "time": 1, "achieved": true}]},
  {"id": "3", "parent_id": "", "kind": "kernel", "what": "launch", "location": "GPU[1]", "start_time": 20, "end_time": 30}
]`

const yamlTrace = `
tasks:
  - id: "1"
    kind: kernel
    what: launch
    location: GPU[0]
    start_time: 0
    end_time: 10
  - id: "2"
    parent_id: "1"
    kind: req
    what: read
    location: GPU[0].L1
    start_time: 2
    end_time: 4
`

func writeTrace(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func ids(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestSource_TasksJSON(t *testing.T) {
	s := New(writeTrace(t, "trace.json", jsonTrace))

	tasks, err := s.Tasks(context.Background(), domain.TraceQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, ids(tasks), "sorted by start time")
	assert.Equal(t, "GPU[0]", tasks[0].Location)
	require.Len(t, tasks[0].Milestones, 1)
	assert.True(t, tasks[0].Milestones[0].Achieved)
	require.Len(t, tasks[1].Steps, 1)
	assert.Equal(t, "hit", tasks[1].Steps[0].What)
	assert.Equal(t, "1", tasks[1].ParentID)
}

func TestSource_TasksQuery(t *testing.T) {
	s := New(writeTrace(t, "trace.json", jsonTrace))
	ctx := context.Background()

	tasks, err := s.Tasks(ctx, domain.WindowQuery(domain.TimeWindow{StartTime: 5, EndTime: 25}, ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(tasks))

	tasks, err = s.Tasks(ctx, domain.TraceQuery{ParentID: "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(tasks))

	tasks, err = s.Tasks(ctx, domain.TraceQuery{Where: "GPU[1]"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(tasks))
}

func TestSource_TasksObjectForm(t *testing.T) {
	s := New(writeTrace(t, "trace.json", `{"tasks": [{"id": "a", "start_time": 1, "end_time": 2}]}`))

	tasks, err := s.Tasks(context.Background(), domain.TraceQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(tasks))
}

func TestSource_TasksYAML(t *testing.T) {
	s := New(writeTrace(t, "trace.yaml", yamlTrace))

	tasks, err := s.Tasks(context.Background(), domain.TraceQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(tasks))
	assert.Equal(t, "GPU[0].L1", tasks[1].Location)
	assert.Equal(t, 4.0, tasks[1].EndTime)
}

func TestSource_TasksYAMLList(t *testing.T) {
	s := New(writeTrace(t, "trace.yml", "- id: x\n  start_time: 0\n  end_time: 1\n"))

	tasks, err := s.Tasks(context.Background(), domain.TraceQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(tasks))
}

func TestSource_EmptyFile(t *testing.T) {
	s := New(writeTrace(t, "trace.json", "  \n"))

	tasks, err := s.Tasks(context.Background(), domain.TraceQuery{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSource_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New("").Tasks(ctx, domain.TraceQuery{})
	assert.ErrorIs(t, err, domain.ErrEmptyTracePath)

	_, err = New(filepath.Join(t.TempDir(), "missing.json")).Tasks(ctx, domain.TraceQuery{})
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)

	_, err = New(writeTrace(t, "bad.json", "[{")).Tasks(ctx, domain.TraceQuery{})
	assert.ErrorContains(t, err, "parse trace file")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = New(writeTrace(t, "trace.json", jsonTrace)).Tasks(cancelled, domain.TraceQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_ComponentNames(t *testing.T) {
	s := New(writeTrace(t, "trace.json", jsonTrace))

	names, err := s.ComponentNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GPU[0]", "GPU[0].L1", "GPU[1]"}, names)
	assert.Equal(t, s.path, s.Path())
}
