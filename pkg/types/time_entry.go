package types

import "time"

// TimeEntry is a tracked interval of work. A nil EndedAt means the timer is
// still running.
type TimeEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	TaskID    string     `json:"taskId,omitempty"`
	ProjectID string     `json:"projectId,omitempty"`
	Note      string     `json:"note,omitempty"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

func (e TimeEntry) EntityID() string { return e.ID }
func (e *TimeEntry) SetEntityID(id string) { e.ID = id }

// Running reports whether the entry has not been stopped.
func (e TimeEntry) Running() bool { return e.EndedAt == nil }

// Stop ends a running entry at the given time. Returns ErrInvalidInterval
// if end precedes the start, ErrInvalidState if the entry already ended.
func (e *TimeEntry) Stop(end time.Time) error {
	if e.EndedAt != nil {
		return ErrInvalidState
	}
	if end.Before(e.StartedAt) {
		return ErrInvalidInterval
	}
	e.EndedAt = &end
	return nil
}

// Duration returns the length of the entry, measured up to now while the
// entry is running.
func (e TimeEntry) Duration(now time.Time) time.Duration {
	if e.EndedAt != nil {
		return e.EndedAt.Sub(e.StartedAt)
	}
	return now.Sub(e.StartedAt)
}
