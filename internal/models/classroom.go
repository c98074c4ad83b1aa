package models

import (
	"strings"
	"time"
)

// ClassroomKind is the explicit classification of a classroom. Homeroom-ness
// used to be inferred from a name substring; the kind column makes it a
// first-class attribute while HasHomeroomName still recognises legacy rows.
type ClassroomKind string

// Classroom kinds.
const (
	ClassroomKindHomeroom   ClassroomKind = "HOMEROOM"
	ClassroomKindCore       ClassroomKind = "CORE"
	ClassroomKindEnrichment ClassroomKind = "ENRICHMENT"
	ClassroomKindSpecial    ClassroomKind = "SPECIAL"
)

// Classroom is a teaching group at a school, optionally tied to a subject,
// a school year and a single teacher.
type Classroom struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	SchoolID     uint          `gorm:"not null;index" json:"school_id"`
	Name         string        `gorm:"size:100;not null" json:"name"`
	Kind         ClassroomKind `gorm:"size:20;not null;default:CORE;index" json:"kind"`
	GradeLevel   string        `gorm:"size:10" json:"grade_level,omitempty"`
	SubjectID    *uint         `gorm:"index" json:"subject_id,omitempty"`
	SchoolYearID *uint         `gorm:"index" json:"school_year_id,omitempty"`
	TeacherID    *uint         `gorm:"index" json:"teacher_id,omitempty"`
	MaxStudents  *int          `json:"max_students,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsHomeroom reports whether the classroom is a homeroom, either by its kind
// or by the legacy naming convention.
func (c Classroom) IsHomeroom() bool {
	return c.Kind == ClassroomKindHomeroom || HasHomeroomName(c.Name)
}

// HasHomeroomName reports whether a classroom name follows the legacy
// homeroom naming convention.
func HasHomeroomName(name string) bool {
	return strings.Contains(strings.ToLower(name), "homeroom")
}
