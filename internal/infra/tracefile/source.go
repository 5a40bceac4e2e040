// Package tracefile serves trace task records from a JSON or YAML file.
package tracefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/daisen/internal/domain"
)

// Ensure Source implements domain.TraceSource.
var _ domain.TraceSource = (*Source)(nil)

// traceDocument is the object form of a trace file.
type traceDocument struct {
	Tasks []*domain.Task `json:"tasks" yaml:"tasks"`
}

// Source reads the whole trace file on every query, so a file that is
// still being written by a simulator is always seen in its latest state.
type Source struct {
	path string
}

// New creates a Source for the file at path.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the trace file path.
func (s *Source) Path() string {
	return s.path
}

// Tasks returns the tasks matching q, sorted by start time.
func (s *Source) Tasks(ctx context.Context, q domain.TraceQuery) ([]*domain.Task, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []*domain.Task
	for _, t := range all {
		if q.Match(t) {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].StartTime != tasks[j].StartTime {
			return tasks[i].StartTime < tasks[j].StartTime
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

// ComponentNames returns the distinct task locations in sorted order.
func (s *Source) ComponentNames(ctx context.Context) ([]string, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, t := range all {
		if t.Location == "" || seen[t.Location] {
			continue
		}
		seen[t.Location] = true
		names = append(names, t.Location)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Source) load(ctx context.Context) ([]*domain.Task, error) {
	if s.path == "" {
		return nil, domain.ErrEmptyTracePath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := s.readShared()
	if err != nil {
		return nil, err
	}
	tasks, err := decode(s.path, content)
	if err != nil {
		return nil, fmt.Errorf("parse trace file %s: %w", s.path, err)
	}
	return tasks, nil
}

// readShared reads the file under a shared flock so that a cooperating
// writer holding an exclusive lock is never observed half-written.
func (s *Source) readShared() ([]byte, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTraceNotFound, s.path)
		}
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_SH); err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN) }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read trace file: %w", err)
	}
	return content, nil
}

// decode accepts a list of task records or an object with a "tasks" list.
func decode(path string, content []byte) ([]*domain.Task, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(content)
	default:
		return decodeJSON(content)
	}
}

func decodeJSON(content []byte) ([]*domain.Task, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var doc traceDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		return doc.Tasks, nil
	}
	var tasks []*domain.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func decodeYAML(content []byte) ([]*domain.Task, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.MappingNode {
		var doc traceDocument
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Tasks, nil
	}
	var tasks []*domain.Task
	if err := node.Decode(&tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
