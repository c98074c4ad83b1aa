package dto

import (
	"time"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// StudentResponse serializes a student record.
type StudentResponse struct {
	ID              uint       `json:"id"`
	SchoolID        uint       `json:"school_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           *string    `json:"email,omitempty"`
	StudentNumber   *string    `json:"student_number,omitempty"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	EntryDate       *time.Time `json:"entry_date,omitempty"`
	EntryGradeLevel string     `json:"entry_grade_level,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewStudentResponse maps a student model onto its response shape.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:              student.ID,
		SchoolID:        student.SchoolID,
		FirstName:       student.FirstName,
		LastName:        student.LastName,
		Email:           student.Email,
		StudentNumber:   student.StudentNumber,
		DateOfBirth:     student.DateOfBirth,
		EntryDate:       student.EntryDate,
		EntryGradeLevel: student.EntryGradeLevel,
		Notes:           student.Notes,
		Status:          student.Status,
		CreatedAt:       student.CreatedAt,
		UpdatedAt:       student.UpdatedAt,
	}
}

// StudentListRequest defines filters for listing students.
type StudentListRequest struct {
	SchoolID *uint
	Status   string
	Search   string
	Page     int
	PageSize int
}

// StudentListResponse wraps a paginated student listing.
type StudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// StudentCreateRequest captures the payload for creating a student.
type StudentCreateRequest struct {
	SchoolID        uint       `json:"school_id" validate:"required"`
	FirstName       string     `json:"first_name" validate:"required,min=1,max=100"`
	LastName        string     `json:"last_name" validate:"required,min=1,max=100"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	StudentNumber   *string    `json:"student_number" validate:"omitempty,max=20"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	EntryDate       *time.Time `json:"entry_date"`
	EntryGradeLevel string     `json:"entry_grade_level" validate:"omitempty,max=10"`
	Notes           string     `json:"notes" validate:"omitempty,max=2000"`
}

// StudentUpdateRequest captures partial update payloads for students.
type StudentUpdateRequest struct {
	FirstName       *string    `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName        *string    `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	StudentNumber   *string    `json:"student_number" validate:"omitempty,max=20"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	EntryGradeLevel *string    `json:"entry_grade_level" validate:"omitempty,max=10"`
	Notes           *string    `json:"notes" validate:"omitempty,max=2000"`
	Status          *string    `json:"status" validate:"omitempty,oneof=active inactive"`
}
