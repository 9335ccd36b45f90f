package types

import "time"

// Goal states.
const (
	GoalStateActive    = "active"
	GoalStateCompleted = "completed"
	GoalStateAbandoned = "abandoned"
)

// Goal is a long-running objective that tasks can roll up into.
type Goal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CategoryID  string     `json:"categoryId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"` // Percent, 0-100.
	TargetDate  *time.Time `json:"targetDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (g Goal) EntityID() string { return g.ID }
func (g *Goal) SetEntityID(id string) { g.ID = id }

// SetProgress records progress, clamped to 0-100. Reaching 100 completes an
// active goal.
func (g *Goal) SetProgress(percent int) {
	g.Progress = min(max(percent, 0), 100)
	if g.Progress == 100 && g.Status == GoalStateActive {
		g.Status = GoalStateCompleted
	}
}

// DailyGoal is a checklist line attached to one day.
type DailyGoal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	DayID     string    `json:"dayId"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func (g DailyGoal) EntityID() string { return g.ID }
func (g *DailyGoal) SetEntityID(id string) { g.ID = id }
