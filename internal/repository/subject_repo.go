package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// SubjectFilter defines filters for listing subjects.
type SubjectFilter struct {
	GradeBand   string // "elementary" or "middle"
	SubjectType string
}

// SubjectRepository exposes persistence helpers for subjects.
type SubjectRepository interface {
	List(ctx context.Context, filter SubjectFilter) ([]models.Subject, error)
	GetByID(ctx context.Context, id uint) (models.Subject, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Subject, error)
	Delete(ctx context.Context, id uint) error
	CountClassrooms(ctx context.Context, subjectID uint) (int64, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository constructs a subject repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) List(ctx context.Context, filter SubjectFilter) ([]models.Subject, error) {
	query := r.db.WithContext(ctx).Model(&models.Subject{})

	switch filter.GradeBand {
	case "elementary":
		query = query.Where("applies_to_elementary = ?", true)
	case "middle":
		query = query.Where("applies_to_middle = ?", true)
	}
	if filter.SubjectType != "" {
		query = query.Where("subject_type = ?", filter.SubjectType)
	}

	var subjects []models.Subject
	if err := query.Order("name").Find(&subjects).Error; err != nil {
		return nil, err
	}

	return subjects, nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id uint) (models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}

func (r *subjectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subject{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Subject, error) {
	tx := r.db.WithContext(ctx).Model(&models.Subject{}).Where("id = ?", id)
	if err := tx.Updates(updates).Error; err != nil {
		return models.Subject{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Subject{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *subjectRepository) CountClassrooms(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Classroom{}).
		Where("subject_id = ?", subjectID).
		Count(&count).Error

	return count, err
}
