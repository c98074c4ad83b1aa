package models

import "time"

// EnrollmentStatus captures the lifecycle of an enrollment. Replaced is the
// terminal state reached when a later homeroom assignment supersedes it.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
	EnrollmentStatusReplaced  EnrollmentStatus = "replaced"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
)

// Enrollment links a student to a classroom, optionally scoped to a school
// year. A NULL school year means the enrollment is year-unscoped.
type Enrollment struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	StudentID        uint             `gorm:"not null;index" json:"student_id"`
	ClassroomID      uint             `gorm:"not null;index" json:"classroom_id"`
	SchoolYearID     *uint            `gorm:"index" json:"school_year_id,omitempty"`
	Status           EnrollmentStatus `gorm:"size:20;not null;default:active;index" json:"status"`
	EnrolledAt       time.Time        `gorm:"not null" json:"enrolled_at"`
	WithdrawnAt      *time.Time       `json:"withdrawn_at,omitempty"`
	WithdrawalReason string           `gorm:"size:100" json:"withdrawal_reason,omitempty"`
	EnrolledByID     *uint            `json:"enrolled_by_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// IsActive reports whether the enrollment currently counts toward placement.
func (e Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}
