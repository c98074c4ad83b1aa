package models

import (
	"strings"
	"time"
)

// Role is an admin-defined free-text role label. Labels are not drawn from a
// fixed enum, so matching against a required capability is deliberately loose:
// a grant named "admin_principal" satisfies a requirement for "admin".
type Role string

// Satisfies reports whether the role label covers the required capability.
// The relation is case-insensitive substring containment; callers passing
// generic terms like "teacher" match any role containing that word.
func (r Role) Satisfies(required string) bool {
	required = strings.ToLower(strings.TrimSpace(required))
	if required == "" {
		return false
	}
	return strings.Contains(strings.ToLower(string(r)), required)
}

// SatisfiesAny reports whether the role covers at least one of the required
// capabilities.
func (r Role) SatisfiesAny(required []string) bool {
	for _, want := range required {
		if r.Satisfies(want) {
			return true
		}
	}
	return false
}

// RoleGrant assigns a named role to a user, optionally scoped to a school.
// A user may hold several grants, possibly at different schools; duplicate
// grants are tolerated.
type RoleGrant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Role      Role      `gorm:"size:100;not null" json:"role"`
	SchoolID  *uint     `gorm:"index" json:"school_id,omitempty"`
	Status    string    `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliesTo reports whether the grant is active and scoped to the given
// school. A nil grant scope applies everywhere; a nil requested scope only
// constrains on activity.
func (g RoleGrant) AppliesTo(schoolID *uint) bool {
	if g.Status != StatusActive {
		return false
	}
	if schoolID == nil || g.SchoolID == nil {
		return true
	}
	return *g.SchoolID == *schoolID
}
