package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

// RoomService manages physical rooms.
type RoomService interface {
	List(ctx context.Context, req dto.RoomListRequest) ([]dto.RoomResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.RoomResponse, error)
	Create(ctx context.Context, req dto.RoomCreateRequest) (*dto.RoomResponse, error)
	Update(ctx context.Context, id uint, req dto.RoomUpdateRequest) (*dto.RoomResponse, error)
	Deactivate(ctx context.Context, id uint) error
}

type roomService struct {
	rooms     repository.RoomRepository
	schools   repository.SchoolRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRoomService constructs the room service.
func NewRoomService(rooms repository.RoomRepository, schools repository.SchoolRepository, logger zerolog.Logger) RoomService {
	return &roomService{
		rooms:     rooms,
		schools:   schools,
		validator: validator.New(),
		logger:    logger.With().Str("component", "room_service").Logger(),
	}
}

func (s *roomService) List(ctx context.Context, req dto.RoomListRequest) ([]dto.RoomResponse, error) {
	rooms, err := s.rooms.List(ctx, repository.RoomFilter{
		SchoolID:     req.SchoolID,
		RoomType:     req.RoomType,
		BookableOnly: req.BookableOnly,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, dto.NewRoomResponse(room))
	}

	return items, nil
}

func (s *roomService) GetByID(ctx context.Context, id uint) (*dto.RoomResponse, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "room %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

func (s *roomService) Create(ctx context.Context, req dto.RoomCreateRequest) (*dto.RoomResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid room payload")
	}

	if _, err := s.schools.GetByID(ctx, req.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindValidation, "school %d not found", req.SchoolID)
		}
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	taken, err := s.rooms.ExistsByCode(ctx, req.SchoolID, code, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.KindConflict, "room code %q is already in use at school %d", code, req.SchoolID)
	}

	bookable := true
	if req.IsBookable != nil {
		bookable = *req.IsBookable
	}

	room := models.Room{
		SchoolID:   req.SchoolID,
		Name:       req.Name,
		RoomCode:   code,
		RoomType:   req.RoomType,
		Capacity:   req.Capacity,
		Features:   req.Features,
		IsBookable: bookable,
		Status:     models.StatusActive,
	}
	if err := s.rooms.Create(ctx, &room); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("room_id", room.ID).Str("room_code", room.RoomCode).Msg("room created")

	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

func (s *roomService) Update(ctx context.Context, id uint, req dto.RoomUpdateRequest) (*dto.RoomResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid room payload")
	}

	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "room %d not found", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.RoomType != nil {
		updates["room_type"] = *req.RoomType
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Features != nil {
		updates["features"] = req.Features
	}
	if req.IsBookable != nil {
		updates["is_bookable"] = *req.IsBookable
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	room, err := s.rooms.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

func (s *roomService) Deactivate(ctx context.Context, id uint) error {
	if err := s.rooms.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "active room %d not found", id)
		}
		return err
	}

	s.logger.Info().Uint("room_id", id).Msg("room deactivated")
	return nil
}
