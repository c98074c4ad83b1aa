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

// SchoolYearService manages school years and the single-active invariant.
type SchoolYearService interface {
	List(ctx context.Context) ([]dto.SchoolYearResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SchoolYearResponse, error)
	GetActive(ctx context.Context) (*dto.SchoolYearResponse, error)
	Create(ctx context.Context, req dto.SchoolYearCreateRequest) (*dto.SchoolYearResponse, error)
	SetActive(ctx context.Context, id uint) (*dto.SchoolYearResponse, error)
	Delete(ctx context.Context, id uint) error
}

type schoolYearService struct {
	years       repository.SchoolYearRepository
	enrollments repository.EnrollmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewSchoolYearService constructs the school year service.
func NewSchoolYearService(
	years repository.SchoolYearRepository,
	enrollments repository.EnrollmentRepository,
	logger zerolog.Logger,
) SchoolYearService {
	return &schoolYearService{
		years:       years,
		enrollments: enrollments,
		validator:   validator.New(),
		logger:      logger.With().Str("component", "school_year_service").Logger(),
	}
}

func (s *schoolYearService) List(ctx context.Context) ([]dto.SchoolYearResponse, error) {
	years, err := s.years.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SchoolYearResponse, 0, len(years))
	for _, year := range years {
		items = append(items, dto.NewSchoolYearResponse(year))
	}

	return items, nil
}

func (s *schoolYearService) GetByID(ctx context.Context, id uint) (*dto.SchoolYearResponse, error) {
	year, err := s.years.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "school year %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewSchoolYearResponse(year)
	return &resp, nil
}

func (s *schoolYearService) GetActive(ctx context.Context) (*dto.SchoolYearResponse, error) {
	year, err := s.years.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no active school year")
		}
		return nil, err
	}

	resp := dto.NewSchoolYearResponse(year)
	return &resp, nil
}

func (s *schoolYearService) Create(ctx context.Context, req dto.SchoolYearCreateRequest) (*dto.SchoolYearResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid school year payload")
	}

	year := models.SchoolYear{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	}
	if err := s.years.Create(ctx, &year); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("school_year_id", year.ID).Bool("is_active", year.IsActive).Msg("school year created")

	resp := dto.NewSchoolYearResponse(year)
	return &resp, nil
}

func (s *schoolYearService) SetActive(ctx context.Context, id uint) (*dto.SchoolYearResponse, error) {
	year, err := s.years.SetActive(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "school year %d not found", id)
		}
		return nil, err
	}

	s.logger.Info().Uint("school_year_id", id).Msg("school year activated")

	resp := dto.NewSchoolYearResponse(year)
	return &resp, nil
}

// Delete removes a school year. The active year and any year referenced by
// enrollments are protected.
func (s *schoolYearService) Delete(ctx context.Context, id uint) error {
	year, err := s.years.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "school year %d not found", id)
		}
		return err
	}
	if year.IsActive {
		return apperr.New(apperr.KindValidation, "the active school year cannot be deleted")
	}

	count, err := s.enrollments.CountBySchoolYear(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.New(apperr.KindValidation, "school year %d is referenced by %d enrollments", id, count)
	}

	if err := s.years.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "school year %d not found", id)
		}
		return err
	}

	s.logger.Info().Uint("school_year_id", id).Msg("school year deleted")
	return nil
}
