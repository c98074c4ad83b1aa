package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// RoomResponse serializes a room.
type RoomResponse struct {
	ID         uint                   `json:"id"`
	SchoolID   uint                   `json:"school_id"`
	Name       string                 `json:"name"`
	RoomCode   string                 `json:"room_code"`
	RoomType   string                 `json:"room_type"`
	Capacity   *int                   `json:"capacity,omitempty"`
	Features   map[string]interface{} `json:"features,omitempty"`
	IsBookable bool                   `json:"is_bookable"`
	Status     string                 `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewRoomResponse maps a room model onto its response shape.
func NewRoomResponse(room models.Room) RoomResponse {
	return RoomResponse{
		ID:         room.ID,
		SchoolID:   room.SchoolID,
		Name:       room.Name,
		RoomCode:   room.RoomCode,
		RoomType:   room.RoomType,
		Capacity:   room.Capacity,
		Features:   room.Features,
		IsBookable: room.IsBookable,
		Status:     room.Status,
		CreatedAt:  room.CreatedAt,
	}
}

// RoomListRequest defines filters for listing rooms.
type RoomListRequest struct {
	SchoolID     *uint
	RoomType     string
	BookableOnly bool
}

// RoomCreateRequest captures the payload for creating a room.
type RoomCreateRequest struct {
	SchoolID   uint              `json:"school_id" validate:"required"`
	Name       string            `json:"name" validate:"required,min=1,max=100"`
	RoomCode   string            `json:"room_code" validate:"required,min=1,max=20"`
	RoomType   string            `json:"room_type" validate:"required,min=1,max=30"`
	Capacity   *int              `json:"capacity" validate:"omitempty,min=1"`
	Features   datatypes.JSONMap `json:"features"`
	IsBookable *bool             `json:"is_bookable"`
}

// RoomUpdateRequest captures partial update payloads for rooms.
type RoomUpdateRequest struct {
	Name       *string           `json:"name" validate:"omitempty,min=1,max=100"`
	RoomType   *string           `json:"room_type" validate:"omitempty,min=1,max=30"`
	Capacity   *int              `json:"capacity" validate:"omitempty,min=1"`
	Features   datatypes.JSONMap `json:"features"`
	IsBookable *bool             `json:"is_bookable"`
}
