package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// EnrollmentRepository exposes read helpers for enrollments. Mutations run
// through the homeroom coordinator transaction.
type EnrollmentRepository interface {
	ListByStudent(ctx context.Context, studentID uint, activeOnly bool) ([]models.Enrollment, error)
	CountBySchoolYear(ctx context.Context, schoolYearID uint) (int64, error)
	Withdraw(ctx context.Context, id uint, reason string) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs an enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID uint, activeOnly bool) ([]models.Enrollment, error) {
	query := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if activeOnly {
		query = query.Where("status = ?", models.EnrollmentStatusActive)
	}

	var enrollments []models.Enrollment
	if err := query.Order("enrolled_at DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *enrollmentRepository) CountBySchoolYear(ctx context.Context, schoolYearID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("school_year_id = ?", schoolYearID).
		Count(&count).Error

	return count, err
}

func (r *enrollmentRepository) Withdraw(ctx context.Context, id uint, reason string) error {
	update := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("id = ?", id).
		Where("status = ?", models.EnrollmentStatusActive).
		Updates(map[string]interface{}{
			"status":            models.EnrollmentStatusWithdrawn,
			"withdrawn_at":      gorm.Expr("CURRENT_TIMESTAMP"),
			"withdrawal_reason": reason,
		})
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
