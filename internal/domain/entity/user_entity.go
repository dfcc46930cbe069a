package entity

import (
	"time"
)

// Role is fixed when the user is created.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is an annotator or administrator account.
// PasswordHash holds a bcrypt hash and never leaves the service layer.
//
// Group membership is not stored here; it is derived from Group.Reviewers.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	State        State
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Deactivate() error { return deactivate(&u.State) }
