package models

// Role is a named, assignable label in the guild
type Role struct {
	// ID is the Discord role ID
	ID string

	// Name is the display name of the role, matched exactly
	Name string
}
