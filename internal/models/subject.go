package models

import "time"

// Subject is a teachable discipline. System-core subjects are seeded and may
// only be renamed, never reclassified or deleted.
type Subject struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:100;not null" json:"name"`
	Code                string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	SubjectType         string    `gorm:"size:20;not null;default:CORE" json:"subject_type"`
	AppliesToElementary bool      `gorm:"not null;default:true" json:"applies_to_elementary"`
	AppliesToMiddle     bool      `gorm:"not null;default:true" json:"applies_to_middle"`
	IsHomeroomDefault   bool      `gorm:"not null;default:false" json:"is_homeroom_default"`
	RequiresSpecialist  bool      `gorm:"not null;default:false" json:"requires_specialist"`
	AllowsCrossGrade    bool      `gorm:"not null;default:false" json:"allows_cross_grade"`
	IsSystemCore        bool      `gorm:"not null;default:false" json:"is_system_core"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
