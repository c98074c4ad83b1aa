package dto

import (
	"time"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// ClassroomResponse serializes a classroom.
type ClassroomResponse struct {
	ID           uint      `json:"id"`
	SchoolID     uint      `json:"school_id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	GradeLevel   string    `json:"grade_level,omitempty"`
	SubjectID    *uint     `json:"subject_id,omitempty"`
	SchoolYearID *uint     `json:"school_year_id,omitempty"`
	TeacherID    *uint     `json:"teacher_id,omitempty"`
	MaxStudents  *int      `json:"max_students,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewClassroomResponse maps a classroom model onto its response shape.
func NewClassroomResponse(classroom models.Classroom) ClassroomResponse {
	return ClassroomResponse{
		ID:           classroom.ID,
		SchoolID:     classroom.SchoolID,
		Name:         classroom.Name,
		Kind:         string(classroom.Kind),
		GradeLevel:   classroom.GradeLevel,
		SubjectID:    classroom.SubjectID,
		SchoolYearID: classroom.SchoolYearID,
		TeacherID:    classroom.TeacherID,
		MaxStudents:  classroom.MaxStudents,
		CreatedAt:    classroom.CreatedAt,
		UpdatedAt:    classroom.UpdatedAt,
	}
}

// ClassroomListRequest defines filters for listing classrooms.
type ClassroomListRequest struct {
	SchoolID     *uint
	SchoolYearID *uint
	GradeLevel   string
	SubjectID    *uint
	TeacherID    *uint
	Kind         string
}

// ClassroomCreateRequest captures the payload for creating a classroom.
type ClassroomCreateRequest struct {
	SchoolID     uint   `json:"school_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Kind         string `json:"kind" validate:"omitempty,oneof=HOMEROOM CORE ENRICHMENT SPECIAL"`
	GradeLevel   string `json:"grade_level" validate:"omitempty,max=10"`
	SubjectID    *uint  `json:"subject_id"`
	SchoolYearID *uint  `json:"school_year_id"`
	TeacherID    *uint  `json:"teacher_id"`
	MaxStudents  *int   `json:"max_students" validate:"omitempty,min=1"`
}

// ClassroomUpdateRequest captures partial update payloads for classrooms.
type ClassroomUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Kind        *string `json:"kind" validate:"omitempty,oneof=HOMEROOM CORE ENRICHMENT SPECIAL"`
	GradeLevel  *string `json:"grade_level" validate:"omitempty,max=10"`
	TeacherID   *uint   `json:"teacher_id"`
	MaxStudents *int    `json:"max_students" validate:"omitempty,min=1"`
}

// RosterResponse lists the students actively enrolled in a classroom.
type RosterResponse struct {
	ClassroomID uint              `json:"classroom_id"`
	Students    []StudentResponse `json:"students"`
}
