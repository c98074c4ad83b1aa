package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// SchoolYearRepository exposes persistence helpers for school years.
type SchoolYearRepository interface {
	List(ctx context.Context) ([]models.SchoolYear, error)
	GetByID(ctx context.Context, id uint) (models.SchoolYear, error)
	GetActive(ctx context.Context) (models.SchoolYear, error)
	Create(ctx context.Context, year *models.SchoolYear) error
	SetActive(ctx context.Context, id uint) (models.SchoolYear, error)
	Delete(ctx context.Context, id uint) error
}

type schoolYearRepository struct {
	db *gorm.DB
}

// NewSchoolYearRepository constructs a school year repository.
func NewSchoolYearRepository(db *gorm.DB) SchoolYearRepository {
	return &schoolYearRepository{db: db}
}

func (r *schoolYearRepository) List(ctx context.Context) ([]models.SchoolYear, error) {
	var years []models.SchoolYear
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&years).Error; err != nil {
		return nil, err
	}

	return years, nil
}

func (r *schoolYearRepository) GetByID(ctx context.Context, id uint) (models.SchoolYear, error) {
	var year models.SchoolYear
	if err := r.db.WithContext(ctx).First(&year, id).Error; err != nil {
		return models.SchoolYear{}, err
	}

	return year, nil
}

func (r *schoolYearRepository) GetActive(ctx context.Context) (models.SchoolYear, error) {
	var year models.SchoolYear
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&year).Error; err != nil {
		return models.SchoolYear{}, err
	}

	return year, nil
}

// Create persists a new year. When the year is flagged active it deactivates
// every other year in the same transaction so the single-active invariant
// holds.
func (r *schoolYearRepository) Create(ctx context.Context, year *models.SchoolYear) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(year).Error; err != nil {
			return err
		}

		if year.IsActive {
			return tx.Model(&models.SchoolYear{}).
				Where("id <> ?", year.ID).
				Update("is_active", false).Error
		}

		return nil
	})
}

// SetActive activates the given year and deactivates all others atomically.
func (r *schoolYearRepository) SetActive(ctx context.Context, id uint) (models.SchoolYear, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var year models.SchoolYear
		if err := tx.First(&year, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.SchoolYear{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.SchoolYear{}).
			Where("id = ?", id).
			Update("is_active", true).Error
	})
	if err != nil {
		return models.SchoolYear{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *schoolYearRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SchoolYear{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
