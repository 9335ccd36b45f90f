package types

import "time"

// User is the account that owns every other record. Users are provisioned
// by the identity provider; daybook only mirrors them.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) EntityID() string { return u.ID }
func (u *User) SetEntityID(id string) { u.ID = id }
