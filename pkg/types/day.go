package types

import "time"

// DateLayout is the calendar-date format used by days and habit logs.
const DateLayout = "2006-01-02"

// Day is the journal page for one calendar date.
type Day struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"` // DateLayout, in the user's zone.
	Journal   string    `json:"journal,omitempty"`
	Mood      int       `json:"mood,omitempty"` // 1-5; 0 means unrecorded.
	CreatedAt time.Time `json:"createdAt"`
}

func (d Day) EntityID() string { return d.ID }
func (d *Day) SetEntityID(id string) { d.ID = id }

// ParseDate validates a DateLayout string. Returns ErrInvalidDate when it
// does not parse.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
