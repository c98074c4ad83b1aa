package dto

import (
	"time"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// SchoolYearResponse serializes a school year.
type SchoolYearResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
}

// NewSchoolYearResponse maps a school year model onto its response shape.
func NewSchoolYearResponse(year models.SchoolYear) SchoolYearResponse {
	return SchoolYearResponse{
		ID:        year.ID,
		Name:      year.Name,
		StartDate: year.StartDate,
		EndDate:   year.EndDate,
		IsActive:  year.IsActive,
	}
}

// SchoolYearCreateRequest captures the payload for creating a school year.
type SchoolYearCreateRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=50"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	IsActive  bool      `json:"is_active"`
}
