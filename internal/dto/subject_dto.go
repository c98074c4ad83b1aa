package dto

import (
	"time"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// SubjectResponse serializes a subject.
type SubjectResponse struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	Code                string    `json:"code"`
	SubjectType         string    `json:"subject_type"`
	AppliesToElementary bool      `json:"applies_to_elementary"`
	AppliesToMiddle     bool      `json:"applies_to_middle"`
	IsHomeroomDefault   bool      `json:"is_homeroom_default"`
	RequiresSpecialist  bool      `json:"requires_specialist"`
	AllowsCrossGrade    bool      `json:"allows_cross_grade"`
	IsSystemCore        bool      `json:"is_system_core"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewSubjectResponse maps a subject model onto its response shape.
func NewSubjectResponse(subject models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:                  subject.ID,
		Name:                subject.Name,
		Code:                subject.Code,
		SubjectType:         subject.SubjectType,
		AppliesToElementary: subject.AppliesToElementary,
		AppliesToMiddle:     subject.AppliesToMiddle,
		IsHomeroomDefault:   subject.IsHomeroomDefault,
		RequiresSpecialist:  subject.RequiresSpecialist,
		AllowsCrossGrade:    subject.AllowsCrossGrade,
		IsSystemCore:        subject.IsSystemCore,
		CreatedAt:           subject.CreatedAt,
	}
}

// SubjectCreateRequest captures the payload for creating a subject.
type SubjectCreateRequest struct {
	Name                string `json:"name" validate:"required,min=1,max=100"`
	Code                string `json:"code" validate:"required,min=1,max=20"`
	SubjectType         string `json:"subject_type" validate:"omitempty,oneof=CORE ENRICHMENT SPECIAL core enrichment special"`
	AppliesToElementary *bool  `json:"applies_to_elementary"`
	AppliesToMiddle     *bool  `json:"applies_to_middle"`
	IsHomeroomDefault   bool   `json:"is_homeroom_default"`
	RequiresSpecialist  bool   `json:"requires_specialist"`
	AllowsCrossGrade    bool   `json:"allows_cross_grade"`
}

// SubjectUpdateRequest captures partial update payloads for subjects.
// System-core subjects only accept a name change.
type SubjectUpdateRequest struct {
	Name                *string `json:"name" validate:"omitempty,min=1,max=100"`
	SubjectType         *string `json:"subject_type" validate:"omitempty,oneof=CORE ENRICHMENT SPECIAL core enrichment special"`
	AppliesToElementary *bool   `json:"applies_to_elementary"`
	AppliesToMiddle     *bool   `json:"applies_to_middle"`
	IsHomeroomDefault   *bool   `json:"is_homeroom_default"`
	RequiresSpecialist  *bool   `json:"requires_specialist"`
	AllowsCrossGrade    *bool   `json:"allows_cross_grade"`
}
