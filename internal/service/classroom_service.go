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

// ClassroomService manages classrooms and their rosters.
type ClassroomService interface {
	List(ctx context.Context, req dto.ClassroomListRequest) ([]dto.ClassroomResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ClassroomResponse, error)
	Create(ctx context.Context, req dto.ClassroomCreateRequest) (*dto.ClassroomResponse, error)
	Update(ctx context.Context, id uint, req dto.ClassroomUpdateRequest) (*dto.ClassroomResponse, error)
	Delete(ctx context.Context, id uint) error
	Roster(ctx context.Context, id uint) (*dto.RosterResponse, error)
}

type classroomService struct {
	classrooms repository.ClassroomRepository
	schools    repository.SchoolRepository
	cache      RosterCache
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewClassroomService constructs the classroom service.
func NewClassroomService(
	classrooms repository.ClassroomRepository,
	schools repository.SchoolRepository,
	cache RosterCache,
	logger zerolog.Logger,
) ClassroomService {
	return &classroomService{
		classrooms: classrooms,
		schools:    schools,
		cache:      cache,
		validator:  validator.New(),
		logger:     logger.With().Str("component", "classroom_service").Logger(),
	}
}

func (s *classroomService) List(ctx context.Context, req dto.ClassroomListRequest) ([]dto.ClassroomResponse, error) {
	classrooms, err := s.classrooms.List(ctx, repository.ClassroomFilter{
		SchoolID:     req.SchoolID,
		SchoolYearID: req.SchoolYearID,
		GradeLevel:   req.GradeLevel,
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		Kind:         models.ClassroomKind(req.Kind),
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClassroomResponse, 0, len(classrooms))
	for _, classroom := range classrooms {
		items = append(items, dto.NewClassroomResponse(classroom))
	}

	return items, nil
}

func (s *classroomService) GetByID(ctx context.Context, id uint) (*dto.ClassroomResponse, error) {
	classroom, err := s.classrooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "classroom %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewClassroomResponse(classroom)
	return &resp, nil
}

func (s *classroomService) Create(ctx context.Context, req dto.ClassroomCreateRequest) (*dto.ClassroomResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid classroom payload")
	}

	if _, err := s.schools.GetByID(ctx, req.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindValidation, "school %d not found", req.SchoolID)
		}
		return nil, err
	}

	kind := models.ClassroomKind(req.Kind)
	if kind == "" {
		kind = models.ClassroomKindCore
	}

	classroom := models.Classroom{
		SchoolID:     req.SchoolID,
		Name:         req.Name,
		Kind:         kind,
		GradeLevel:   req.GradeLevel,
		SubjectID:    req.SubjectID,
		SchoolYearID: req.SchoolYearID,
		TeacherID:    req.TeacherID,
		MaxStudents:  req.MaxStudents,
	}
	if err := s.classrooms.Create(ctx, &classroom); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("classroom_id", classroom.ID).Str("kind", string(classroom.Kind)).Msg("classroom created")

	resp := dto.NewClassroomResponse(classroom)
	return &resp, nil
}

func (s *classroomService) Update(ctx context.Context, id uint, req dto.ClassroomUpdateRequest) (*dto.ClassroomResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid classroom payload")
	}

	if _, err := s.classrooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "classroom %d not found", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Kind != nil {
		updates["kind"] = *req.Kind
	}
	if req.GradeLevel != nil {
		updates["grade_level"] = *req.GradeLevel
	}
	if req.TeacherID != nil {
		updates["teacher_id"] = *req.TeacherID
	}
	if req.MaxStudents != nil {
		updates["max_students"] = *req.MaxStudents
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	classroom, err := s.classrooms.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)

	resp := dto.NewClassroomResponse(classroom)
	return &resp, nil
}

func (s *classroomService) Delete(ctx context.Context, id uint) error {
	count, err := s.classrooms.CountActiveEnrollments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.New(apperr.KindValidation, "classroom %d still has %d active enrollments", id, count)
	}

	if err := s.classrooms.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "classroom %d not found", id)
		}
		return err
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info().Uint("classroom_id", id).Msg("classroom deleted")
	return nil
}

func (s *classroomService) Roster(ctx context.Context, id uint) (*dto.RosterResponse, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	if _, err := s.classrooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "classroom %d not found", id)
		}
		return nil, err
	}

	students, err := s.classrooms.Roster(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	roster := dto.RosterResponse{ClassroomID: id, Students: items}
	s.cache.Set(ctx, id, roster)

	return &roster, nil
}
