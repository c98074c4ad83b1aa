package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

// SchoolService manages school records.
type SchoolService interface {
	List(ctx context.Context) ([]dto.SchoolResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SchoolResponse, error)
	Create(ctx context.Context, req dto.SchoolCreateRequest) (*dto.SchoolResponse, error)
	Update(ctx context.Context, id uint, req dto.SchoolUpdateRequest) (*dto.SchoolResponse, error)
}

type schoolService struct {
	schools   repository.SchoolRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(schools repository.SchoolRepository, logger zerolog.Logger) SchoolService {
	return &schoolService{
		schools:   schools,
		validator: validator.New(),
		logger:    logger.With().Str("component", "school_service").Logger(),
	}
}

func (s *schoolService) List(ctx context.Context) ([]dto.SchoolResponse, error) {
	schools, err := s.schools.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SchoolResponse, 0, len(schools))
	for _, school := range schools {
		items = append(items, dto.NewSchoolResponse(school))
	}

	return items, nil
}

func (s *schoolService) GetByID(ctx context.Context, id uint) (*dto.SchoolResponse, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "school %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewSchoolResponse(school)
	return &resp, nil
}

func (s *schoolService) Create(ctx context.Context, req dto.SchoolCreateRequest) (*dto.SchoolResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid school payload")
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "America/New_York"
	}

	school := models.School{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Timezone: timezone,
	}
	if err := s.schools.Create(ctx, &school); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("school_id", school.ID).Str("name", school.Name).Msg("school created")

	resp := dto.NewSchoolResponse(school)
	return &resp, nil
}

func (s *schoolService) Update(ctx context.Context, id uint, req dto.SchoolUpdateRequest) (*dto.SchoolResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid school payload")
	}

	if _, err := s.schools.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "school %d not found", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.ZipCode != nil {
		updates["zip_code"] = *req.ZipCode
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	school, err := s.schools.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := dto.NewSchoolResponse(school)
	return &resp, nil
}
