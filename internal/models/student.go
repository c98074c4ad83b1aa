package models

import (
	"strings"
	"time"
)

// Student represents a learner registered at a school. Students are only
// ever soft-deleted by flipping Status to inactive.
type Student struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	SchoolID        uint       `gorm:"not null;index" json:"school_id"`
	FirstName       string     `gorm:"size:100;not null" json:"first_name"`
	LastName        string     `gorm:"size:100;not null" json:"last_name"`
	Email           *string    `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	StudentNumber   *string    `gorm:"size:20;uniqueIndex" json:"student_number,omitempty"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	EntryDate       *time.Time `json:"entry_date,omitempty"`
	EntryGradeLevel string     `gorm:"size:10" json:"entry_grade_level,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	Status          string     `gorm:"size:20;not null;default:active;index" json:"status"`
	Enrollments     []Enrollment `json:"enrollments,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// FullName joins the student's first and last names.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
