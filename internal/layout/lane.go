// Package layout computes on-screen geometry for a hierarchical task trace.
package layout

import (
	"sort"

	"github.com/runoshun/daisen/internal/domain"
)

// AssignLanes packs tasks into the fewest lanes a greedy scan by start time
// allows, writing the lane number into each task's YIndex. It returns the
// largest lane index used (0 when there is at most one lane).
//
// The input slice is reordered by start time.
func AssignLanes(tasks []*domain.Task) int {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].StartTime < tasks[j].StartTime
	})

	var lanes [][]*domain.Task
	maxLane := 0
	for _, t := range tasks {
		lane := firstFreeLane(lanes, t)
		if lane == len(lanes) {
			lanes = append(lanes, nil)
		}
		lanes[lane] = append(lanes[lane], t)
		t.YIndex = lane
		if lane > maxLane {
			maxLane = lane
		}
	}
	return maxLane
}

// firstFreeLane returns the lowest lane with no occupant conflicting with t,
// or len(lanes) when every lane conflicts.
func firstFreeLane(lanes [][]*domain.Task, t *domain.Task) int {
	for i, occupants := range lanes {
		free := true
		for _, o := range occupants {
			if conflicts(t, o) {
				free = false
				break
			}
		}
		if free {
			return i
		}
	}
	return len(lanes)
}

// conflicts reports whether a (the task being placed) and b (a lane
// occupant) overlap. The boundary comparisons differ per clause; zero
// duration and touching tasks depend on them.
func conflicts(a, b *domain.Task) bool {
	switch {
	case b.StartTime <= a.StartTime && b.EndTime > a.StartTime:
		return true
	case b.StartTime < a.EndTime && b.EndTime >= a.EndTime:
		return true
	case a.StartTime <= b.StartTime && a.EndTime >= b.EndTime:
		return true
	case b.StartTime <= a.StartTime && b.EndTime >= a.EndTime:
		return true
	}
	return false
}
