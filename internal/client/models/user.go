// Package models defines the data shapes exchanged with the task API.
package models

import "slices"

// UserRole is the account role assigned at signup. It has no effect on what
// the client shows or allows.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Roles lists the selectable roles in the order the signup form offers them.
func Roles() []UserRole {
	return []UserRole{RoleUser, RoleAdmin}
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return slices.Contains(Roles(), r)
}

// User is an account as returned by the API.
type User struct {
	ID     string   `json:"_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	Avatar string   `json:"avatar,omitempty"`
}

// DisplayName returns the user's name, or "User" when it is unknown.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "User"
	}
	return u.Name
}
