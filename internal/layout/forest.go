package layout

import (
	"github.com/runoshun/daisen/internal/domain"
)

// BuildForest links tasks into a forest under a synthetic root (level 0,
// empty ID). A task whose parent is not in the batch becomes a root; this
// is normal for windowed queries.
//
// Every call allocates fresh SubTasks slices. Tasks caught in a parent
// cycle cannot be reached from any root; they are left out of the forest
// and reported through a *domain.CycleError. The returned root is valid
// even when err is non-nil.
func BuildForest(tasks []*domain.Task) (*domain.Task, error) {
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		t.SubTasks = nil
		t.Level = 0
		byID[t.ID] = t
	}

	root := &domain.Task{}
	var roots []*domain.Task
	for _, t := range tasks {
		parent, ok := byID[t.ParentID]
		if !ok || t.ParentID == "" || parent == t {
			roots = append(roots, t)
			continue
		}
		parent.SubTasks = append(parent.SubTasks, t)
	}
	root.SubTasks = roots

	reached := assignLevels(root)
	if reached == len(tasks) {
		return root, nil
	}

	var lost []string
	for _, t := range tasks {
		if t.Level == 0 {
			lost = append(lost, t.ID)
		}
	}
	return root, &domain.CycleError{IDs: lost}
}

type pending struct {
	task  *domain.Task
	level int
}

// assignLevels sets Level on every descendant of root using an explicit
// work queue and returns the number of tasks visited.
func assignLevels(root *domain.Task) int {
	visited := make(map[*domain.Task]bool)
	queue := make([]pending, 0, len(root.SubTasks))
	for _, t := range root.SubTasks {
		queue = append(queue, pending{task: t, level: 1})
	}

	count := 0
	for len(queue) > 0 {
		p := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if visited[p.task] {
			continue
		}
		visited[p.task] = true
		p.task.Level = p.level
		count++
		for _, c := range p.task.SubTasks {
			queue = append(queue, pending{task: c, level: p.level + 1})
		}
	}
	return count
}

// Walk visits every task below root in depth-first pre-order.
func Walk(root *domain.Task, fn func(*domain.Task)) {
	stack := make([]*domain.Task, 0, len(root.SubTasks))
	for i := len(root.SubTasks) - 1; i >= 0; i-- {
		stack = append(stack, root.SubTasks[i])
	}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(t)
		for i := len(t.SubTasks) - 1; i >= 0; i-- {
			stack = append(stack, t.SubTasks[i])
		}
	}
}
