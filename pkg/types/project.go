package types

import "time"

// Project states.
const (
	ProjectStateActive   = "active"
	ProjectStateArchived = "archived"
)

// Project groups tasks and time entries.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Project) EntityID() string { return p.ID }
func (p *Project) SetEntityID(id string) { p.ID = id }

// Archive moves the project out of the active list. Idempotent.
func (p *Project) Archive() {
	p.Status = ProjectStateArchived
	p.UpdatedAt = time.Now()
}
