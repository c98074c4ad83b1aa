package dto

import (
	"time"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// SchoolResponse serializes a school.
type SchoolResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSchoolResponse maps a school model onto its response shape.
func NewSchoolResponse(school models.School) SchoolResponse {
	return SchoolResponse{
		ID:        school.ID,
		Name:      school.Name,
		Address:   school.Address,
		City:      school.City,
		State:     school.State,
		ZipCode:   school.ZipCode,
		Timezone:  school.Timezone,
		CreatedAt: school.CreatedAt,
	}
}

// SchoolCreateRequest captures the payload for creating a school.
type SchoolCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Address  string `json:"address" validate:"omitempty,max=255"`
	City     string `json:"city" validate:"omitempty,max=100"`
	State    string `json:"state" validate:"omitempty,max=50"`
	ZipCode  string `json:"zip_code" validate:"omitempty,max=20"`
	Timezone string `json:"timezone" validate:"omitempty,max=64"`
}

// SchoolUpdateRequest captures partial update payloads for schools.
type SchoolUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	State    *string `json:"state" validate:"omitempty,max=50"`
	ZipCode  *string `json:"zip_code" validate:"omitempty,max=20"`
	Timezone *string `json:"timezone" validate:"omitempty,max=64"`
}
