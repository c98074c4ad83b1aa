package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

// StudentService manages student records.
type StudentService interface {
	List(ctx context.Context, req dto.StudentListRequest) (*dto.StudentListResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.StudentResponse, error)
	Create(ctx context.Context, req dto.StudentCreateRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) (*dto.StudentResponse, error)
	Deactivate(ctx context.Context, id uint) error
}

type studentService struct {
	students  repository.StudentRepository
	schools   repository.SchoolRepository
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(students repository.StudentRepository, schools repository.SchoolRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  students,
		schools:   schools,
		sanitizer: bluemonday.StrictPolicy(),
		validator: validator.New(),
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) (*dto.StudentListResponse, error) {
	students, total, err := s.students.List(ctx, repository.StudentFilter{
		SchoolID: req.SchoolID,
		Status:   req.Status,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	return &dto.StudentListResponse{
		Items:      items,
		Pagination: dto.NewPaginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "student %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest) (*dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid student payload")
	}

	if _, err := s.schools.GetByID(ctx, req.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindValidation, "school %d not found", req.SchoolID)
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != "" {
		taken, err := s.students.ExistsByEmail(ctx, *req.Email, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.New(apperr.KindConflict, "a student with this email already exists")
		}
	}
	if req.StudentNumber != nil && *req.StudentNumber != "" {
		taken, err := s.students.ExistsByStudentNumber(ctx, *req.StudentNumber, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.New(apperr.KindConflict, "a student with this student number already exists")
		}
	}

	student := models.Student{
		SchoolID:        req.SchoolID,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           req.Email,
		StudentNumber:   req.StudentNumber,
		DateOfBirth:     req.DateOfBirth,
		EntryDate:       req.EntryDate,
		EntryGradeLevel: req.EntryGradeLevel,
		Notes:           s.sanitizer.Sanitize(req.Notes),
		Status:          models.StatusActive,
	}
	if err := s.students.Create(ctx, &student); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("student_id", student.ID).Uint("school_id", student.SchoolID).Msg("student created")

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) (*dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid student payload")
	}

	if req.Email != nil && *req.Email != "" {
		taken, err := s.students.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.New(apperr.KindConflict, "a student with this email already exists")
		}
	}
	if req.StudentNumber != nil && *req.StudentNumber != "" {
		taken, err := s.students.ExistsByStudentNumber(ctx, *req.StudentNumber, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.New(apperr.KindConflict, "a student with this student number already exists")
		}
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.StudentNumber != nil {
		updates["student_number"] = *req.StudentNumber
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.EntryGradeLevel != nil {
		updates["entry_grade_level"] = *req.EntryGradeLevel
	}
	if req.Notes != nil {
		updates["notes"] = s.sanitizer.Sanitize(*req.Notes)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	student, err := s.students.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "student %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

func (s *studentService) Deactivate(ctx context.Context, id uint) error {
	if err := s.students.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "active student %d not found", id)
		}
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student deactivated")
	return nil
}
