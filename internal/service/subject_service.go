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

// SubjectService manages the subject catalog. System-core subjects are seeded
// and mostly immutable.
type SubjectService interface {
	List(ctx context.Context, gradeBand, subjectType string) ([]dto.SubjectResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SubjectResponse, error)
	Create(ctx context.Context, req dto.SubjectCreateRequest) (*dto.SubjectResponse, error)
	Update(ctx context.Context, id uint, req dto.SubjectUpdateRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id uint) error
}

type subjectService struct {
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(subjects repository.SubjectRepository, logger zerolog.Logger) SubjectService {
	return &subjectService{
		subjects:  subjects,
		validator: validator.New(),
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) List(ctx context.Context, gradeBand, subjectType string) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjects.List(ctx, repository.SubjectFilter{
		GradeBand:   strings.ToLower(gradeBand),
		SubjectType: strings.ToUpper(subjectType),
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		items = append(items, dto.NewSubjectResponse(subject))
	}

	return items, nil
}

func (s *subjectService) GetByID(ctx context.Context, id uint) (*dto.SubjectResponse, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "subject %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewSubjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) Create(ctx context.Context, req dto.SubjectCreateRequest) (*dto.SubjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid subject payload")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	taken, err := s.subjects.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.KindConflict, "subject code %q is already in use", code)
	}

	subjectType := strings.ToUpper(req.SubjectType)
	if subjectType == "" {
		subjectType = "CORE"
	}

	appliesElementary := true
	if req.AppliesToElementary != nil {
		appliesElementary = *req.AppliesToElementary
	}
	appliesMiddle := true
	if req.AppliesToMiddle != nil {
		appliesMiddle = *req.AppliesToMiddle
	}

	subject := models.Subject{
		Name:                req.Name,
		Code:                code,
		SubjectType:         subjectType,
		AppliesToElementary: appliesElementary,
		AppliesToMiddle:     appliesMiddle,
		IsHomeroomDefault:   req.IsHomeroomDefault,
		RequiresSpecialist:  req.RequiresSpecialist,
		AllowsCrossGrade:    req.AllowsCrossGrade,
		IsSystemCore:        false,
	}
	if err := s.subjects.Create(ctx, &subject); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Str("code", subject.Code).Msg("subject created")

	resp := dto.NewSubjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, req dto.SubjectUpdateRequest) (*dto.SubjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid subject payload")
	}

	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "subject %d not found", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if !subject.IsSystemCore {
		if req.SubjectType != nil {
			updates["subject_type"] = strings.ToUpper(*req.SubjectType)
		}
		if req.AppliesToElementary != nil {
			updates["applies_to_elementary"] = *req.AppliesToElementary
		}
		if req.AppliesToMiddle != nil {
			updates["applies_to_middle"] = *req.AppliesToMiddle
		}
		if req.IsHomeroomDefault != nil {
			updates["is_homeroom_default"] = *req.IsHomeroomDefault
		}
		if req.RequiresSpecialist != nil {
			updates["requires_specialist"] = *req.RequiresSpecialist
		}
		if req.AllowsCrossGrade != nil {
			updates["allows_cross_grade"] = *req.AllowsCrossGrade
		}
	} else if req.SubjectType != nil || req.AppliesToElementary != nil || req.AppliesToMiddle != nil ||
		req.IsHomeroomDefault != nil || req.RequiresSpecialist != nil || req.AllowsCrossGrade != nil {
		return nil, apperr.New(apperr.KindValidation, "system core subjects only accept a name change")
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	updated, err := s.subjects.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := dto.NewSubjectResponse(updated)
	return &resp, nil
}

// Delete removes a subject. System-core subjects and subjects referenced by
// classrooms are protected.
func (s *subjectService) Delete(ctx context.Context, id uint) error {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "subject %d not found", id)
		}
		return err
	}
	if subject.IsSystemCore {
		return apperr.New(apperr.KindValidation, "system core subject %q cannot be deleted", subject.Code)
	}

	count, err := s.subjects.CountClassrooms(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.New(apperr.KindValidation, "subject %d is referenced by %d classrooms", id, count)
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "subject %d not found", id)
		}
		return err
	}

	s.logger.Info().Uint("subject_id", id).Msg("subject deleted")
	return nil
}
