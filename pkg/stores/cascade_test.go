package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/daybook/pkg/types"
)

func seededRegistry() *Registry {
	r := New()
	r.Projects.SetAll([]types.Project{{ID: "p1"}, {ID: "p2"}})
	r.Tasks.SetAll([]types.Task{
		{ID: "t1", ProjectID: "p1"},
		{ID: "t2", ProjectID: "p1", ParentID: "t1"},
		{ID: "t3", ParentID: "t2"},
		{ID: "t4", ProjectID: "p2"},
	})
	r.TimeEntries.SetAll([]types.TimeEntry{
		{ID: "e1", TaskID: "t1"},
		{ID: "e2", TaskID: "t3"},
		{ID: "e3", ProjectID: "p1"},
		{ID: "e4", TaskID: "t4"},
	})
	r.Habits.SetAll([]types.Habit{{ID: "h1"}, {ID: "h2"}})
	r.HabitLogs.SetAll([]types.HabitLog{
		{ID: "l1", HabitID: "h1"},
		{ID: "l2", HabitID: "h2"},
		{ID: "l3", HabitID: "h1"},
	})
	r.Days.SetAll([]types.Day{{ID: "d1"}})
	r.DailyGoals.SetAll([]types.DailyGoal{{ID: "g1", DayID: "d1"}, {ID: "g2", DayID: "d2"}})
	return r
}

func taskIDs(r *Registry) []string {
	var out []string
	for _, t := range r.Tasks.All() {
		out = append(out, t.ID)
	}
	return out
}

func TestRemoveProjectCascades(t *testing.T) {
	r := seededRegistry()
	r.Projects.SelectID("p1")
	r.Tasks.SelectID("t3")

	removed := r.RemoveProject("p1")

	assert.ElementsMatch(t, []string{"t1", "t2", "t3"}, removed[types.KindTasks])
	assert.ElementsMatch(t, []string{"e1", "e2", "e3"}, removed[types.KindTimeEntries])
	assert.Equal(t, []string{"p1"}, removed[types.KindProjects])
	assert.Equal(t, 7, removed.Count())

	assert.Equal(t, []string{"t4"}, taskIDs(r))
	assert.Equal(t, 1, r.TimeEntries.Len())
	_, ok := r.Projects.Selected()
	assert.False(t, ok)
	_, ok = r.Tasks.Selected()
	assert.False(t, ok, "selection of a cascaded task is cleared")
}

func TestRemoveTaskCascadesToSubtasks(t *testing.T) {
	r := seededRegistry()

	removed := r.RemoveTask("t2")

	assert.ElementsMatch(t, []string{"t2", "t3"}, removed[types.KindTasks])
	assert.Equal(t, []string{"e2"}, removed[types.KindTimeEntries])
	assert.Equal(t, []string{"t1", "t4"}, taskIDs(r))
}

func TestRemoveTaskSurvivesParentCycles(t *testing.T) {
	r := New()
	r.Tasks.SetAll([]types.Task{{ID: "a", ParentID: "b"}, {ID: "b", ParentID: "a"}})

	removed := r.RemoveTask("a")

	assert.ElementsMatch(t, []string{"a", "b"}, removed[types.KindTasks])
	assert.Zero(t, r.Tasks.Len())
}

func TestRemoveHabitCascades(t *testing.T) {
	r := seededRegistry()

	removed := r.RemoveHabit("h1")

	assert.Equal(t, []string{"l1", "l3"}, removed[types.KindHabitLogs])
	assert.Equal(t, []string{"h1"}, removed[types.KindHabits])
	assert.Equal(t, 1, r.HabitLogs.Len())
}

func TestRemoveDayCascades(t *testing.T) {
	r := seededRegistry()

	removed := r.RemoveDay("d1")

	assert.Equal(t, []string{"g1"}, removed[types.KindDailyGoals])
	assert.Equal(t, []string{"d1"}, removed[types.KindDays])
	assert.Equal(t, 1, r.DailyGoals.Len())
}

func TestRemoveUnknownIsEmpty(t *testing.T) {
	r := seededRegistry()
	assert.Zero(t, r.RemoveProject("nope").Count())
	assert.Zero(t, r.RemoveHabit("nope").Count())
	assert.Zero(t, r.RemoveDay("nope").Count())
	assert.Zero(t, r.RemoveTask("nope").Count())
}
