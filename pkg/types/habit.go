package types

import "time"

// Habit frequencies.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

var validFrequencies = map[string]bool{
	FrequencyDaily:   true,
	FrequencyWeekly:  true,
	FrequencyMonthly: true,
}

// Habit is a recurring behaviour tracked through habit logs.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CategoryID  string    `json:"categoryId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	TargetCount int       `json:"targetCount"` // Check-ins per period.
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h Habit) EntityID() string { return h.ID }
func (h *Habit) SetEntityID(id string) { h.ID = id }

// SetFrequency changes how often the habit is expected. Returns
// ErrInvalidFrequency for unknown values.
func (h *Habit) SetFrequency(freq string) error {
	if !validFrequencies[freq] {
		return ErrInvalidFrequency
	}
	h.Frequency = freq
	return nil
}

// HabitLog records the check-ins of one habit on one date.
type HabitLog struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habitId"`
	Date      string    `json:"date"` // DateLayout.
	Count     int       `json:"count"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l HabitLog) EntityID() string { return l.ID }
func (l *HabitLog) SetEntityID(id string) { l.ID = id }

// Met reports whether the log reaches the habit's target count.
func (l HabitLog) Met(h Habit) bool {
	target := h.TargetCount
	if target <= 0 {
		target = 1
	}
	return l.Count >= target
}
