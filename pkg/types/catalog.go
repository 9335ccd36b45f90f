package types

import (
	"strings"
	"time"
)

// Category groups goals and habits.
type Category struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
}

func (c Category) EntityID() string { return c.ID }
func (c *Category) SetEntityID(id string) { c.ID = id }

// Validate returns ErrInvalidName when the name is blank.
func (c Category) Validate() error { return checkName(c.Name) }

// Rename sets a trimmed name. Returns ErrInvalidName if it is blank.
func (c *Category) Rename(name string) error { return rename(&c.Name, name) }

// Tag is a free-form label.
type Tag struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
}

func (t Tag) EntityID() string { return t.ID }
func (t *Tag) SetEntityID(id string) { t.ID = id }

func (t Tag) Validate() error { return checkName(t.Name) }

func (t *Tag) Rename(name string) error { return rename(&t.Name, name) }

// Template kinds name what a template instantiates.
const (
	TemplateKindTask    = "task"
	TemplateKindProject = "project"
	TemplateKindDay     = "day"
)

// Template is reusable content for creating tasks, projects or day pages.
type Template struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

func (t Template) EntityID() string { return t.ID }
func (t *Template) SetEntityID(id string) { t.ID = id }

func (t Template) Validate() error { return checkName(t.Name) }

// Achievement is a milestone unlocked by the user.
type Achievement struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

func (a Achievement) EntityID() string { return a.ID }
func (a *Achievement) SetEntityID(id string) { a.ID = id }

// Unlocked reports whether the achievement has been earned.
func (a Achievement) Unlocked() bool { return a.UnlockedAt != nil }

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

func rename(dst *string, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	*dst = name
	return nil
}
