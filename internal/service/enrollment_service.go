package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

// EnrollmentService coordinates homeroom placement and enrollment reads.
type EnrollmentService interface {
	AssignHomeroom(ctx context.Context, req dto.AssignHomeroomRequest, enrolledByID *uint) (*dto.AssignHomeroomResponse, error)
	ListByStudent(ctx context.Context, studentID uint, activeOnly bool) ([]dto.EnrollmentResponse, error)
	Withdraw(ctx context.Context, id uint, reason string) error
}

type enrollmentService struct {
	homerooms    repository.HomeroomRepository
	enrollments  repository.EnrollmentRepository
	publisher    EventPublisher
	cache        RosterCache
	storeTimeout time.Duration
	validator    *validator.Validate
	tracer       trace.Tracer
	logger       zerolog.Logger
}

// NewEnrollmentService constructs the enrollment coordinator.
func NewEnrollmentService(
	homerooms repository.HomeroomRepository,
	enrollments repository.EnrollmentRepository,
	publisher EventPublisher,
	cache RosterCache,
	storeTimeout time.Duration,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentService{
		homerooms:    homerooms,
		enrollments:  enrollments,
		publisher:    publisher,
		cache:        cache,
		storeTimeout: storeTimeout,
		validator:    validator.New(),
		tracer:       otel.Tracer("enrollment-service"),
		logger:       logger.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) AssignHomeroom(ctx context.Context, req dto.AssignHomeroomRequest, enrolledByID *uint) (*dto.AssignHomeroomResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid assignment payload")
	}

	ctx, span := s.tracer.Start(ctx, "AssignHomeroom",
		trace.WithAttributes(attribute.Int("teacher_id", int(req.TeacherID))))
	defer span.End()

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	result, err := s.homerooms.AssignHomeroom(storeCtx, repository.AssignHomeroomParams{
		StudentID:    req.StudentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		TeacherID:    req.TeacherID,
		SchoolID:     req.SchoolID,
		SchoolYearID: req.SchoolYearID,
		EnrolledByID: enrolledByID,
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperr.Wrap(err, apperr.KindUnavailable, "assignment timed out")
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("student_id", int(result.Student.ID)),
		attribute.Int("classroom_id", int(result.Classroom.ID)),
		attribute.Int64("replaced_count", result.ReplacedCount),
	)

	s.logger.Info().
		Uint("student_id", result.Student.ID).
		Uint("classroom_id", result.Classroom.ID).
		Bool("enrollment_created", result.Created).
		Int64("replaced_count", result.ReplacedCount).
		Msg("homeroom assigned")

	// Post-commit side effects; the assignment outcome no longer depends on
	// them.
	if result.Created || result.ReplacedCount > 0 {
		s.cache.Invalidate(ctx, result.Classroom.ID)
		s.publisher.PublishHomeroomAssigned(HomeroomAssignedEvent{
			StudentID:     result.Student.ID,
			ClassroomID:   result.Classroom.ID,
			TeacherID:     req.TeacherID,
			SchoolID:      result.Classroom.SchoolID,
			SchoolYearID:  result.SchoolYearID,
			ReplacedCount: result.ReplacedCount,
			AssignedAt:    time.Now().UTC(),
		})
	}

	return &dto.AssignHomeroomResponse{
		Student:        dto.NewStudentResponse(result.Student),
		Classroom:      dto.NewClassroomResponse(result.Classroom),
		SchoolYearID:   result.SchoolYearID,
		EnrollmentNew:  result.Created,
		ReplacedCount:  result.ReplacedCount,
		StudentCreated: result.StudentCreated,
	}, nil
}

func (s *enrollmentService) ListByStudent(ctx context.Context, studentID uint, activeOnly bool) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID, activeOnly)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		items = append(items, dto.NewEnrollmentResponse(enrollment))
	}

	return items, nil
}

func (s *enrollmentService) Withdraw(ctx context.Context, id uint, reason string) error {
	if err := s.enrollments.Withdraw(ctx, id, reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "active enrollment %d not found", id)
		}
		return err
	}

	s.logger.Info().Uint("enrollment_id", id).Str("reason", reason).Msg("enrollment withdrawn")
	return nil
}
