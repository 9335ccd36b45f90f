package stores

import "github.com/mesh-intelligence/daybook/pkg/types"

// Removed lists the IDs a cascade removed, keyed by kind. Callers use it to
// issue the matching deletes against persistence.
type Removed map[string][]string

func (r Removed) add(kind, id string) {
	r[kind] = append(r[kind], id)
}

// Count returns the total number of removed entities.
func (r Removed) Count() int {
	n := 0
	for _, ids := range r {
		n += len(ids)
	}
	return n
}

// RemoveTask removes a task, its subtasks at any depth, and the time
// entries booked against any of them.
func (r *Registry) RemoveTask(id string) Removed {
	out := Removed{}
	r.removeTask(id, out, map[string]bool{})
	return out
}

func (r *Registry) removeTask(id string, out Removed, seen map[string]bool) {
	if seen[id] {
		return
	}
	seen[id] = true
	for _, child := range r.Subtasks(id) {
		r.removeTask(child.ID, out, seen)
	}
	for _, e := range r.TimeEntriesByTask(id) {
		r.TimeEntries.Remove(e.ID)
		out.add(types.KindTimeEntries, e.ID)
	}
	if _, ok := r.Tasks.Get(id); ok {
		out.add(types.KindTasks, id)
	}
	r.Tasks.Remove(id)
}

// RemoveProject removes a project, its tasks (with their subtasks and
// time entries), and time entries booked directly against the project.
func (r *Registry) RemoveProject(id string) Removed {
	out := Removed{}
	seen := map[string]bool{}
	for _, t := range r.TasksByProject(id) {
		r.removeTask(t.ID, out, seen)
	}
	for _, e := range r.TimeEntriesByProject(id) {
		r.TimeEntries.Remove(e.ID)
		out.add(types.KindTimeEntries, e.ID)
	}
	if _, ok := r.Projects.Get(id); ok {
		out.add(types.KindProjects, id)
	}
	r.Projects.Remove(id)
	return out
}

// RemoveHabit removes a habit and its logs.
func (r *Registry) RemoveHabit(id string) Removed {
	out := Removed{}
	for _, l := range r.HabitLogsByHabit(id) {
		r.HabitLogs.Remove(l.ID)
		out.add(types.KindHabitLogs, l.ID)
	}
	if _, ok := r.Habits.Get(id); ok {
		out.add(types.KindHabits, id)
	}
	r.Habits.Remove(id)
	return out
}

// RemoveDay removes a day page and its daily goals.
func (r *Registry) RemoveDay(id string) Removed {
	out := Removed{}
	for _, g := range r.DailyGoalsByDay(id) {
		r.DailyGoals.Remove(g.ID)
		out.add(types.KindDailyGoals, g.ID)
	}
	if _, ok := r.Days.Get(id); ok {
		out.add(types.KindDays, id)
	}
	r.Days.Remove(id)
	return out
}
