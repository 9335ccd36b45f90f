package stores

import (
	"github.com/mesh-intelligence/daybook/pkg/store"
	"github.com/mesh-intelligence/daybook/pkg/types"
)

// Named selectors for the most common call sites. Each is a thin wrapper
// over a registered filter.

// TasksByProject returns the tasks of one project in insertion order.
func (r *Registry) TasksByProject(projectID string) []types.Task {
	return pick(r.Tasks, ByProjectID, projectID)
}

// Subtasks returns the direct children of a task.
func (r *Registry) Subtasks(parentID string) []types.Task {
	return pick(r.Tasks, ByParentID, parentID)
}

// TasksByGoal returns the tasks rolled up into a goal.
func (r *Registry) TasksByGoal(goalID string) []types.Task {
	return pick(r.Tasks, ByGoalID, goalID)
}

// DailyGoalsByDay returns the checklist of one day.
func (r *Registry) DailyGoalsByDay(dayID string) []types.DailyGoal {
	return pick(r.DailyGoals, ByDayID, dayID)
}

// HabitLogsByHabit returns the logs of one habit.
func (r *Registry) HabitLogsByHabit(habitID string) []types.HabitLog {
	return pick(r.HabitLogs, ByHabitID, habitID)
}

// TimeEntriesByTask returns the time entries booked against a task.
func (r *Registry) TimeEntriesByTask(taskID string) []types.TimeEntry {
	return pick(r.TimeEntries, ByTaskID, taskID)
}

// TimeEntriesByProject returns the time entries booked against a project.
func (r *Registry) TimeEntriesByProject(projectID string) []types.TimeEntry {
	return pick(r.TimeEntries, ByProjectID, projectID)
}

// DayByDate returns the day page for a calendar date, if loaded.
func (r *Registry) DayByDate(date string) (types.Day, bool) {
	days := pick(r.Days, ByDate, date)
	if len(days) == 0 {
		return types.Day{}, false
	}
	return days[0], true
}

// pick runs a filter the registry itself registered; the name is always
// known, so the configuration error cannot occur.
func pick[T any](s *store.Store[T], name, key string) []T {
	out, err := s.Filter(name, key)
	if err != nil {
		panic(err)
	}
	return out
}
