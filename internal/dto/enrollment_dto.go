package dto

import (
	"time"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// AssignHomeroomRequest carries the homeroom assignment payload. Either
// student_id or first/last name (with optional email for reuse) identifies
// the student.
type AssignHomeroomRequest struct {
	StudentID    *uint   `json:"student_id"`
	FirstName    string  `json:"first_name" validate:"required_without=StudentID,omitempty,min=1,max=100"`
	LastName     string  `json:"last_name" validate:"required_without=StudentID,omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	TeacherID    uint    `json:"teacher_id" validate:"required"`
	SchoolID     *uint   `json:"school_id"`
	SchoolYearID *uint   `json:"school_year_id"`
}

// EnrollmentResponse serializes an enrollment.
type EnrollmentResponse struct {
	ID               uint       `json:"id"`
	StudentID        uint       `json:"student_id"`
	ClassroomID      uint       `json:"classroom_id"`
	SchoolYearID     *uint      `json:"school_year_id,omitempty"`
	Status           string     `json:"status"`
	EnrolledAt       time.Time  `json:"enrolled_at"`
	WithdrawnAt      *time.Time `json:"withdrawn_at,omitempty"`
	WithdrawalReason string     `json:"withdrawal_reason,omitempty"`
}

// NewEnrollmentResponse maps an enrollment model onto its response shape.
func NewEnrollmentResponse(enrollment models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:               enrollment.ID,
		StudentID:        enrollment.StudentID,
		ClassroomID:      enrollment.ClassroomID,
		SchoolYearID:     enrollment.SchoolYearID,
		Status:           string(enrollment.Status),
		EnrolledAt:       enrollment.EnrolledAt,
		WithdrawnAt:      enrollment.WithdrawnAt,
		WithdrawalReason: enrollment.WithdrawalReason,
	}
}

// AssignHomeroomResponse reports the outcome of a homeroom assignment.
type AssignHomeroomResponse struct {
	Student        StudentResponse   `json:"student"`
	Classroom      ClassroomResponse `json:"classroom"`
	SchoolYearID   *uint             `json:"school_year_id,omitempty"`
	EnrollmentNew  bool              `json:"enrollment_created"`
	ReplacedCount  int64             `json:"replaced_count"`
	StudentCreated bool              `json:"student_created"`
}
