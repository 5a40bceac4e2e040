// Package domain contains core trace entities, ports, and errors.
package domain

// Task represents a unit of simulated work recorded in a trace.
// Fields are ordered to minimize memory padding.
type Task struct {
	Dim        *Dim        `json:"-" yaml:"-"`                                       // Screen rectangle from the last layout pass
	ID         string      `json:"id" yaml:"id"`                                     // Globally unique ID
	ParentID   string      `json:"parent_id" yaml:"parent_id"`                       // Parent task ID (empty = none)
	Kind       string      `json:"kind" yaml:"kind"`                                 // Category, together with What
	What       string      `json:"what" yaml:"what"`                                 // Category detail
	Location   string      `json:"location" yaml:"location"`                         // Owning simulated component
	Milestones []Milestone `json:"milestones,omitempty" yaml:"milestones,omitempty"` // Named checkpoints
	Steps      []Step      `json:"steps,omitempty" yaml:"steps,omitempty"`           // Sub-events
	SubTasks   []*Task     `json:"-" yaml:"-"`                                       // Children, populated by the forest builder
	StartTime  float64     `json:"start_time" yaml:"start_time"`                     // Seconds
	EndTime    float64     `json:"end_time" yaml:"end_time"`                         // Seconds, >= StartTime
	Level      int         `json:"-" yaml:"-"`                                       // Depth in the forest (roots = 1)
	YIndex     int         `json:"-" yaml:"-"`                                       // Lane within the sibling group
}

// Milestone is a named checkpoint within a task.
type Milestone struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Time     float64 `json:"time" yaml:"time"`
	Achieved bool    `json:"achieved" yaml:"achieved"`
}

// Step is a timestamped sub-event of a task.
type Step struct {
	What string  `json:"what" yaml:"what"`
	Kind string  `json:"kind" yaml:"kind"`
	Time float64 `json:"time" yaml:"time"`
}

// IsRoot returns true if the task has no parent reference.
func (t *Task) IsRoot() bool {
	return t.ParentID == ""
}

// Duration returns EndTime - StartTime.
func (t *Task) Duration() float64 {
	return t.EndTime - t.StartTime
}

// Category returns the key used to group tasks of the same kind.
func (t *Task) Category() string {
	return t.Kind + "-" + t.What
}

// Overlaps reports whether the task intersects [start, end].
func (t *Task) Overlaps(start, end float64) bool {
	return t.EndTime >= start && t.StartTime <= end
}

// Clone returns a copy of the wire fields of the task.
// Derived fields (SubTasks, Level, YIndex, Dim) are reset.
func (t *Task) Clone() *Task {
	c := &Task{
		ID:        t.ID,
		ParentID:  t.ParentID,
		Kind:      t.Kind,
		What:      t.What,
		Location:  t.Location,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
	}
	if len(t.Milestones) > 0 {
		c.Milestones = append([]Milestone(nil), t.Milestones...)
	}
	if len(t.Steps) > 0 {
		c.Steps = append([]Step(nil), t.Steps...)
	}
	return c
}
