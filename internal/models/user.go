package models

import (
	"strings"
	"time"
)

// Lifecycle states shared by users, students, rooms and role grants.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents a staff principal that can authenticate against the API.
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	FirstName    string      `gorm:"size:100;not null" json:"first_name"`
	LastName     string      `gorm:"size:100;not null" json:"last_name"`
	Status       string      `gorm:"size:20;not null;default:active;index" json:"status"`
	LastLoginAt  *time.Time  `json:"last_login_at,omitempty"`
	RoleGrants   []RoleGrant `json:"role_grants,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// FullName joins the user's first and last names.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsActive reports whether the user may authenticate.
func (u User) IsActive() bool {
	return u.Status == StatusActive
}
