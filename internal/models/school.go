package models

import "time"

// School is the top-level tenant boundary. Rooms, students, classrooms and
// scoped role grants all hang off a school.
type School struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"size:255" json:"address,omitempty"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	State     string    `gorm:"size:50" json:"state,omitempty"`
	ZipCode   string    `gorm:"size:20" json:"zip_code,omitempty"`
	Timezone  string    `gorm:"size:64;not null;default:UTC" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
