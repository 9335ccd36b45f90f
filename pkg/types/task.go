package types

import "time"

// Task states. A task moves freely between them; Complete and Reopen keep
// CompletedAt in step with the state.
const (
	TaskStateTodo       = "todo"
	TaskStateInProgress = "in_progress"
	TaskStateDone       = "done"
)

// validTaskStates is the set of recognized task state values.
var validTaskStates = map[string]bool{
	TaskStateTodo:       true,
	TaskStateInProgress: true,
	TaskStateDone:       true,
}

// Task priorities, lowest first.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a unit of work, optionally inside a project, under a goal, or
// nested below a parent task.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ProjectID   string     `json:"projectId,omitempty"`
	ParentID    string     `json:"parentId,omitempty"`
	GoalID      string     `json:"goalId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t Task) EntityID() string { return t.ID }
func (t *Task) SetEntityID(id string) { t.ID = id }

// SetStatus sets the task state. Moving to done stamps CompletedAt; moving
// away from done clears it. Returns ErrInvalidState for unknown states.
func (t *Task) SetStatus(state string) error {
	if !validTaskStates[state] {
		return ErrInvalidState
	}
	now := time.Now()
	switch {
	case state == TaskStateDone && t.Status != TaskStateDone:
		t.CompletedAt = &now
	case state != TaskStateDone:
		t.CompletedAt = nil
	}
	t.Status = state
	t.UpdatedAt = now
	return nil
}

// Overdue reports whether the task has a due date before now and is not
// done.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != TaskStateDone && t.DueDate.Before(now)
}
