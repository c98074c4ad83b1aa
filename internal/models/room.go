package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room is a physical space owned by a school. Room codes are unique within
// a school.
type Room struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	SchoolID   uint              `gorm:"not null;uniqueIndex:idx_rooms_school_code" json:"school_id"`
	Name       string            `gorm:"size:100;not null" json:"name"`
	RoomCode   string            `gorm:"size:20;not null;uniqueIndex:idx_rooms_school_code" json:"room_code"`
	RoomType   string            `gorm:"size:30;not null" json:"room_type"`
	Capacity   *int              `json:"capacity,omitempty"`
	Features   datatypes.JSONMap `gorm:"type:json" json:"features,omitempty"`
	IsBookable bool              `gorm:"not null;default:true" json:"is_bookable"`
	Status     string            `gorm:"size:20;not null;default:active;index" json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
