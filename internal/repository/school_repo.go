package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// SchoolRepository provides access to school records.
type SchoolRepository interface {
	List(ctx context.Context) ([]models.School, error)
	GetByID(ctx context.Context, id uint) (models.School, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.School, error)
}

type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository constructs a school repository.
func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) List(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	if err := r.db.WithContext(ctx).Order("name").Find(&schools).Error; err != nil {
		return nil, err
	}

	return schools, nil
}

func (r *schoolRepository) GetByID(ctx context.Context, id uint) (models.School, error) {
	var school models.School
	if err := r.db.WithContext(ctx).First(&school, id).Error; err != nil {
		return models.School{}, err
	}

	return school, nil
}

func (r *schoolRepository) Create(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.School, error) {
	tx := r.db.WithContext(ctx).Model(&models.School{}).Where("id = ?", id)
	if err := tx.Updates(updates).Error; err != nil {
		return models.School{}, err
	}

	return r.GetByID(ctx, id)
}
